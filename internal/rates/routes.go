package rates

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

// Register mounts all conversion routes. The GBP and EUR groups take
// only the capability they convert through; the rate-setting route goes
// through request locals instead.
func Register(r fiber.Router, all *AllRates, log logger.Logger) {
	RegisterGBP(r, all, log)
	RegisterEUR(r, all, log)

	r.Use(Middleware(all))
	r.Put("/exchange_rate", handleSetExchangeRate(log.With("rates_handler")))
}

func RegisterGBP(r fiber.Router, src GBPSource, log logger.Logger) {
	hlog := log.With("rates_handler")

	r.Get("/usd_to_gbp", func(c *fiber.Ctx) error {
		return convert(c, hlog, Multiply, src.GBPToUSD())
	})
	r.Get("/gbp_to_usd", func(c *fiber.Ctx) error {
		return convert(c, hlog, Divide, src.GBPToUSD())
	})
}

func RegisterEUR(r fiber.Router, src EURSource, log logger.Logger) {
	hlog := log.With("rates_handler")

	r.Get("/usd_to_eur", func(c *fiber.Ctx) error {
		return convert(c, hlog, Multiply, src.EURToUSD())
	})
	r.Get("/eur_to_usd", func(c *fiber.Ctx) error {
		return convert(c, hlog, Divide, src.EURToUSD())
	})
}

func convert(c *fiber.Ctx, log logger.Logger, op func(string, float64) (string, error), rate *Rate) error {
	out, err := op(string(c.Body()), rate.Get())
	if err != nil {
		log.Warn(err)
		return c.Status(http.StatusBadRequest).SendString("bad amount")
	}

	return c.Status(http.StatusOK).SendString(out)
}

func handleSetExchangeRate(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, ok := FromCtx(c)
		if !ok {
			log.Error(errors.Error("rates missing from request locals"))
			return c.Status(http.StatusInternalServerError).SendString("rates not installed")
		}

		v, err := strconv.ParseFloat(string(c.Body()), 64)
		if err != nil {
			log.Warn(errors.Errorf("got malformed rate %q", c.Body()))
			return c.Status(http.StatusBadRequest).SendString("bad rate")
		}

		all.GBPToUSD().Set(v)
		return c.SendStatus(http.StatusOK)
	}
}
