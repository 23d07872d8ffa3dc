package succession

import (
	"errors"
	"log"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/config"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/database"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/routes/auth"
	engine "github.com/JKKN-Institutions/yi-connect-sub003/app/succession"

	"github.com/gofiber/fiber/v2"
)

// adminRoles are the role names allowed to run cycle administration.
var adminRoles = []string{"admin", "succession_admin"}

// Engine returns the succession engine wired to the app database. Handlers go
// through this instead of holding their own reference so the engine always
// follows the live DB config.
func Engine() *engine.Engine {
	return engine.NewEngine(database.NewSuccessionStore(config.GetDB()), logInvalidator{})
}

// logInvalidator is the cache collaborator for this deployment: views are
// rendered straight from Postgres, so invalidation is only logged.
type logInvalidator struct{}

func (logInvalidator) Invalidate(views ...string) {
	log.Printf("Cache invalidate: %v", views)
}

// SetupSuccessionRoutes sets up succession routes
func SetupSuccessionRoutes(app *fiber.App) {
	// Page routes
	app.Get("/succession", auth.AuthMiddleware, renderSuccessionPage)

	api := app.Group("/api/succession")
	api.Use(auth.AuthMiddleware)

	// Cycles
	api.Get("/cycles", GetCyclesAPI)
	api.Get("/cycles/:id", GetCycleAPI)
	api.Post("/cycles", CreateCycleAPI)
	api.Put("/cycles/:id", UpdateCycleAPI)
	api.Post("/cycles/:id/advance", AdvanceCycleAPI)
	api.Delete("/cycles/:id", auth.RoleMiddleware(adminRoles...), DeleteCycleAPI)

	// Positions
	api.Get("/cycles/:id/positions", GetPositionsAPI)
	api.Post("/cycles/:id/positions", CreatePositionAPI)
	api.Put("/positions/:id", UpdatePositionAPI)
	api.Delete("/positions/:id", DeletePositionAPI)

	// Timeline
	api.Get("/cycles/:id/timeline", GetTimelineAPI)
	api.Post("/cycles/:id/timeline/seed", auth.RoleMiddleware(adminRoles...), SeedTimelineAPI)
	api.Post("/cycles/:id/timeline/sync", auth.RoleMiddleware(adminRoles...), SyncTimelineAPI)
	api.Post("/cycles/:id/timeline", CreateStepAPI)
	api.Put("/timeline/:id", UpdateStepAPI)
	api.Delete("/timeline/:id", DeleteStepAPI)

	// Nominations
	api.Get("/cycles/:id/nominations", GetNominationsAPI)
	api.Post("/cycles/:id/nominations", CreateNominationAPI)
	api.Put("/nominations/:id", UpdateNominationAPI)
	api.Post("/nominations/:id/submit", SubmitNominationAPI)
	api.Post("/nominations/:id/withdraw", WithdrawNominationAPI)
	api.Post("/nominations/:id/review", ReviewNominationAPI)

	// Applications
	api.Get("/cycles/:id/applications", GetApplicationsAPI)
	api.Post("/cycles/:id/applications", CreateApplicationAPI)
	api.Put("/applications/:id", UpdateApplicationAPI)
	api.Post("/applications/:id/submit", SubmitApplicationAPI)
	api.Post("/applications/:id/withdraw", WithdrawApplicationAPI)
	api.Post("/applications/:id/review", ReviewApplicationAPI)

	// Evaluations
	api.Get("/cycles/:id/evaluators", GetEvaluatorsAPI)
	api.Post("/cycles/:id/evaluators", AssignEvaluatorAPI)
	api.Post("/cycles/:id/scores", SubmitScoresAPI)

	// Selection phase
	api.Post("/cycles/:id/approaches", RecordApproachAPI)
	api.Post("/approaches/:id/response", ApproachResponseAPI)
	api.Post("/cycles/:id/meetings", ScheduleMeetingAPI)
	api.Put("/meetings/:id/status", SetMeetingStatusAPI)
	api.Post("/votes", SubmitVoteAPI)
}

// actorFromCtx builds the engine actor from the authenticated user.
func actorFromCtx(c *fiber.Ctx) engine.Actor {
	user := c.Locals("user").(*models.User)
	isAdmin := false
	for _, role := range adminRoles {
		if user.HasRole(role) {
			isAdmin = true
			break
		}
	}
	return engine.Actor{MemberID: user.ID, IsAdmin: isAdmin}
}

// respondError maps engine errors to HTTP responses. Every message is safe to
// show the user; unexpected errors are logged and masked.
func respondError(c *fiber.Ctx, err error) error {
	var validation *engine.ValidationError
	var conflict *engine.ConflictError
	var transition *engine.InvalidTransitionError
	var pre *engine.PreconditionError
	var notFound *engine.NotFoundError
	var authz *engine.AuthorizationError

	switch {
	case errors.As(err, &validation):
		return c.Status(422).JSON(fiber.Map{
			"success": false,
			"error":   validation.Error(),
			"fields":  validation.Fields,
		})
	case errors.As(err, &conflict):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": conflict.Error()})
	case errors.As(err, &transition):
		return c.Status(422).JSON(fiber.Map{
			"success": false,
			"error":   transition.Error(),
			"from":    transition.From,
			"to":      transition.To,
		})
	case errors.As(err, &pre):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": pre.Error()})
	case errors.As(err, &notFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": notFound.Error()})
	case errors.As(err, &authz):
		return c.Status(403).JSON(fiber.Map{"success": false, "error": authz.Error()})
	default:
		log.Printf("Succession request failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Something went wrong. Please try again."})
	}
}

func renderSuccessionPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	eng := Engine()

	cycles, err := eng.ListCycles()
	errorMsg := ""
	if err != nil {
		log.Printf("Error fetching succession cycles: %v", err)
		errorMsg = "Could not load succession cycles"
	}

	var current *models.SuccessionCycle
	var steps []models.SuccessionTimelineStep
	if len(cycles) > 0 {
		current = &cycles[0]
		steps, _ = eng.ListSteps(current.ID)
	}

	return c.Render("succession/index", fiber.Map{
		"Title":        "Succession - Yi Connect",
		"CurrentPage":  "succession",
		"FirstName":    user.FirstName,
		"LastName":     user.LastName,
		"Email":        user.Email,
		"User":         user,
		"Cycles":       cycles,
		"HasCycles":    len(cycles) > 0,
		"CurrentCycle": current,
		"Timeline":     steps,
		"ErrorMessage": errorMsg,
	})
}
