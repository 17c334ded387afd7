package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/IllyaHavrulyk/DevConnector/api/http/presenter"
	"github.com/IllyaHavrulyk/DevConnector/pkg/logging"
)

// NewApp builds the Fiber app with the common middleware stack. Routes are
// added separately with Register.
func NewApp(log logrus.FieldLogger, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "devconnector",
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logging.Middleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-auth-token",
	}))
	return app
}

// errorHandler renders errors that escaped a handler (unknown routes,
// recovered panics) in the same {msg} shape the handlers use.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Message(c, fe.Code, fe.Message)
		}
		log.WithField("path", c.Path()).WithError(err).Error("unhandled error")
		return presenter.Message(c, fiber.StatusInternalServerError, "Server Error")
	}
}
