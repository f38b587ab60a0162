package routes

import (
	pcactrl "wagergate/controllers/callback/slots/pca"
	sabactrl "wagergate/controllers/callback/sportsbook/saba"
	"wagergate/controllers/user"
	"wagergate/middlewares"
	"wagergate/providers"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	AdminKey string
	Saba     *sabactrl.Handler
	PCA      *pcactrl.Handler
	User     *user.Handler
	Registry *providers.Registry
}

func Setup(app *fiber.App, deps Deps) {
	userroutes := app.Group("/user", middlewares.AdminAuth(deps.AdminKey))
	userroutes.Post("/register", deps.User.Register)
	userroutes.Post("/balance", deps.User.CheckBalance)
	userroutes.Post("/games/start", deps.User.LaunchGame(deps.Registry))

	// saba sportsbook
	sabaRoutes := app.Group("/seamless/sportsbook/saba")
	sabaRoutes.Post("/getbalance", deps.Saba.GetBalance)
	sabaRoutes.Post("/placebet", deps.Saba.PlaceBet)
	sabaRoutes.Post("/confirmbet", deps.Saba.ConfirmBet)
	sabaRoutes.Post("/settle", deps.Saba.Settle)
	sabaRoutes.Post("/resettle", deps.Saba.Resettle)
	sabaRoutes.Post("/unsettle", deps.Saba.Unsettle)
	sabaRoutes.Post("/cancelbet", deps.Saba.CancelBet)
	sabaRoutes.Post("/adjustbalance", deps.Saba.AdjustBalance)

	// pca slots
	pcaRoutes := app.Group("/seamless/slots/pca")
	pcaRoutes.Post("/authenticate", deps.PCA.Authenticate)
	pcaRoutes.Post("/balance", deps.PCA.Balance)
	pcaRoutes.Post("/bet", deps.PCA.Bet)
	pcaRoutes.Post("/settle", deps.PCA.Settle)
	pcaRoutes.Post("/refund", deps.PCA.Refund)
}
