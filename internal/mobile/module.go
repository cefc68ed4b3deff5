package mobile

import (
	"github.com/EATMove/CDT-sub001/internal/apptoken"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		apptoken.New,
		middleware.NewUserAuth,
		NewHandler,
	),
)
