package succession

import (
	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetNominationsAPI lists a cycle's nominations
func GetNominationsAPI(c *fiber.Ctx) error {
	nominations, err := Engine().ListNominations(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"nominations": nominations,
	})
}

// CreateNominationAPI records a draft nomination
func CreateNominationAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	nomination, err := Engine().CreateNomination(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"nomination": nomination,
	})
}

// UpdateNominationAPI edits the nominator's draft
func UpdateNominationAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	nomination, err := Engine().UpdateNomination(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"nomination": nomination,
	})
}

// SubmitNominationAPI moves a draft to submitted
func SubmitNominationAPI(c *fiber.Ctx) error {
	nomination, err := Engine().SubmitNomination(actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"nomination": nomination,
	})
}

// WithdrawNominationAPI withdraws a draft or submitted nomination
func WithdrawNominationAPI(c *fiber.Ctx) error {
	nomination, err := Engine().WithdrawNomination(actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"nomination": nomination,
	})
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// ReviewNominationAPI approves or rejects a submitted nomination
func ReviewNominationAPI(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	nomination, err := Engine().ReviewNomination(actorFromCtx(c), c.Params("id"), req.Approve, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"nomination": nomination,
	})
}

// GetApplicationsAPI lists a cycle's applications
func GetApplicationsAPI(c *fiber.Ctx) error {
	applications, err := Engine().ListApplications(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"applications": applications,
	})
}

// CreateApplicationAPI records a draft self-application
func CreateApplicationAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	application, err := Engine().CreateApplication(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// UpdateApplicationAPI edits the applicant's draft
func UpdateApplicationAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	application, err := Engine().UpdateApplication(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// SubmitApplicationAPI moves a draft to submitted
func SubmitApplicationAPI(c *fiber.Ctx) error {
	application, err := Engine().SubmitApplication(actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// WithdrawApplicationAPI withdraws a draft or submitted application
func WithdrawApplicationAPI(c *fiber.Ctx) error {
	application, err := Engine().WithdrawApplication(actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// ReviewApplicationAPI approves or rejects a submitted application
func ReviewApplicationAPI(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	application, err := Engine().ReviewApplication(actorFromCtx(c), c.Params("id"), req.Approve, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// GetEvaluatorsAPI lists a cycle's evaluators
func GetEvaluatorsAPI(c *fiber.Ctx) error {
	evaluators, err := Engine().ListEvaluators(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"evaluators": evaluators,
	})
}

// AssignEvaluatorAPI registers an evaluator for a cycle
func AssignEvaluatorAPI(c *fiber.Ctx) error {
	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	evaluator, err := Engine().AssignEvaluator(actorFromCtx(c), c.Params("id"), req.MemberID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"evaluator": evaluator,
	})
}

// SubmitScoresAPI accepts an evaluator's score batch
func SubmitScoresAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	evaluator, err := Engine().SubmitScores(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"evaluator": evaluator,
	})
}

// RecordApproachAPI records an outreach to an approved nominee
func RecordApproachAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	approach, err := Engine().RecordApproach(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"approach": approach,
	})
}

// ApproachResponseAPI records the nominee's answer
func ApproachResponseAPI(c *fiber.Ctx) error {
	var req struct {
		ResponseStatus string `json:"response_status"`
		Notes          string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	approach, err := Engine().RecordApproachResponse(actorFromCtx(c), c.Params("id"), models.ApproachResponse(req.ResponseStatus), req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"approach": approach,
	})
}

// ScheduleMeetingAPI creates a steering-committee meeting
func ScheduleMeetingAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	meeting, err := Engine().ScheduleMeeting(actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"meeting": meeting,
	})
}

// SetMeetingStatusAPI moves a meeting through its lifecycle
func SetMeetingStatusAPI(c *fiber.Ctx) error {
	var req struct {
		Status  string `json:"status"`
		Minutes string `json:"minutes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	meeting, err := Engine().SetMeetingStatus(actorFromCtx(c), c.Params("id"), models.MeetingStatus(req.Status), req.Minutes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"meeting": meeting,
	})
}

// SubmitVoteAPI records a committee vote
func SubmitVoteAPI(c *fiber.Ctx) error {
	in, err := parseBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	vote, err := Engine().SubmitVote(actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"vote":    vote,
	})
}
