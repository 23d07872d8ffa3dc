package succession

import (
	"time"

	engine "github.com/JKKN-Institutions/yi-connect-sub003/app/succession"

	"github.com/gofiber/fiber/v2"
)

// parseBody reads the request body into the engine's loose input shape. The
// engine re-validates and coerces everything; handlers never touch fields.
func parseBody(c *fiber.Ctx) (engine.Input, error) {
	in := engine.Input{}
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	return in, nil
}

// GetCyclesAPI returns all succession cycles
func GetCyclesAPI(c *fiber.Ctx) error {
	cycles, err := Engine().ListCycles()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cycles":  cycles,
	})
}

// GetCycleAPI returns one cycle
func GetCycleAPI(c *fiber.Ctx) error {
	cycle, err := Engine().GetCycle(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cycle":   cycle,
	})
}

// CreateCycleAPI creates a new draft cycle
func CreateCycleAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	cycle, err := Engine().CreateCycle(actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cycle":   cycle,
	})
}

// UpdateCycleAPI applies a partial update (optimistic concurrency)
func UpdateCycleAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	cycle, err := Engine().UpdateCycle(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cycle":   cycle,
	})
}

// AdvanceCycleAPI moves a cycle to the requested status
func AdvanceCycleAPI(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	cycle, err := Engine().AdvanceStatus(actorFromCtx(c), c.Params("id"), engine.CycleStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cycle":   cycle,
	})
}

// DeleteCycleAPI deletes a draft cycle with no positions
func DeleteCycleAPI(c *fiber.Ctx) error {
	if err := Engine().DeleteCycle(actorFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cycle deleted successfully",
	})
}

// GetPositionsAPI lists a cycle's positions
func GetPositionsAPI(c *fiber.Ctx) error {
	positions, err := Engine().ListPositions(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"positions": positions,
	})
}

// CreatePositionAPI adds a position to a cycle
func CreatePositionAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	position, err := Engine().CreatePosition(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"position": position,
	})
}

// UpdatePositionAPI edits a position
func UpdatePositionAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	position, err := Engine().UpdatePosition(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"position": position,
	})
}

// DeletePositionAPI removes a position with no candidacies
func DeletePositionAPI(c *fiber.Ctx) error {
	if err := Engine().DeletePosition(actorFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Position deleted successfully",
	})
}

// GetTimelineAPI lists a cycle's timeline steps
func GetTimelineAPI(c *fiber.Ctx) error {
	steps, err := Engine().ListSteps(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"steps":   steps,
	})
}

// SeedTimelineAPI creates the standard 7-step timeline
func SeedTimelineAPI(c *fiber.Ctx) error {
	var req struct {
		StartDate string `json:"start_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"success": false, "error": "start_date must be a date (YYYY-MM-DD)"})
	}
	count, err := Engine().SeedSteps(c.Params("id"), start)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"step_count": count,
	})
}

// SyncTimelineAPI re-runs the synchronizer for recovery
func SyncTimelineAPI(c *fiber.Ctx) error {
	eng := Engine()
	cycle, err := eng.GetCycle(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := eng.SyncSteps(cycle.ID, cycle.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Timeline synchronized",
	})
}

// CreateStepAPI adds a timeline step manually
func CreateStepAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	step, err := Engine().CreateStep(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"step":    step,
	})
}

// UpdateStepAPI edits a timeline step
func UpdateStepAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	step, err := Engine().UpdateStep(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"step":    step,
	})
}

// DeleteStepAPI removes a timeline step
func DeleteStepAPI(c *fiber.Ctx) error {
	if err := Engine().DeleteStep(actorFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Timeline step deleted successfully",
	})
}
