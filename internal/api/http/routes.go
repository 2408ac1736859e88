package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-card/internal/card"
	"github.com/i474232898/weather-card/internal/weather"
)

var validate = validator.New()

// Card is the part of the card the HTTP layer drives.
type Card interface {
	View(now time.Time) weather.View
	ActiveCity() string
	Search(city string) (string, error)
	SetDraft(text string)
	SubmitDraft() (string, error)
}

// Options configures optional routes.
type Options struct {
	// BackgroundsDir is served under /backgrounds when set.
	BackgroundsDir string
	// Gatherer is exposed under /metrics when set.
	Gatherer prometheus.Gatherer
	Now      func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, c Card, opts Options) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	v1 := app.Group("/api/v1")

	v1.Get("/card", func(ctx *fiber.Ctx) error {
		return ctx.JSON(c.View(now()))
	})

	v1.Get("/city", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"city": c.ActiveCity()})
	})

	v1.Post("/search", func(ctx *fiber.Ctx) error {
		var req searchRequest
		if err := req.bind(ctx); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		city, err := c.Search(req.City)
		if err != nil {
			return searchError(err)
		}
		return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{"city": city})
	})

	v1.Put("/search/draft", func(ctx *fiber.Ctx) error {
		var req draftRequest
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		c.SetDraft(req.Text)
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/search/submit", func(ctx *fiber.Ctx) error {
		city, err := c.SubmitDraft()
		if err != nil {
			return searchError(err)
		}
		return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{"city": city})
	})

	// Browser surface.
	app.Get("/", func(ctx *fiber.Ctx) error {
		body, err := renderPage(c.View(now()))
		if err != nil {
			return err
		}
		ctx.Type("html", "utf-8")
		return ctx.Send(body)
	})

	app.Post("/search", func(ctx *fiber.Ctx) error {
		var req searchRequest
		if err := req.bind(ctx); err == nil {
			// A blank search just redisplays the card, as the form does.
			_, _ = c.Search(req.City)
		}
		return ctx.Redirect("/", fiber.StatusSeeOther)
	})

	if opts.BackgroundsDir != "" {
		app.Static("/backgrounds", opts.BackgroundsDir)
	}

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
}

// searchRequest accepts JSON or form bodies.
type searchRequest struct {
	City string `json:"city" form:"city" validate:"required"`
}

func (r *searchRequest) bind(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(r); err != nil {
		return err
	}
	return validate.Struct(r)
}

type draftRequest struct {
	Text string `json:"text" form:"text"`
}

func searchError(err error) error {
	if errors.Is(err, card.ErrEmptyCity) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
