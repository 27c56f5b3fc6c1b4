package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/littlelemon/api"
	"github.com/zvrva/littlelemon/config"
	"github.com/zvrva/littlelemon/internal/service/auth"
	"github.com/zvrva/littlelemon/internal/service/booking"
	"github.com/zvrva/littlelemon/internal/service/menu"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, menuSvc menu.MenuUseCase, bookingSvc booking.BookingUseCase, authSvc auth.AuthUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, menuSvc, bookingSvc, authSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, menuSvc menu.MenuUseCase, bookingSvc booking.BookingUseCase, authSvc auth.AuthUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/", renderIndex)

	api.NewMenuHandler(menuSvc).Register(router.Group("/menu"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/booking/tables", api.TokenAuth(authSvc)))
	api.NewAuthHandler(authSvc).Register(router.Group("/auth"))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, "/swagger/restaurant.swagger.json")
		})
	}

	return router
}

func renderIndex(c *gin.Context) {
	html := `<!DOCTYPE html>
    <html>
    <head>
        <title>Little Lemon</title>
    </head>
    <body>
        <h1>Little Lemon Restaurant</h1>
        <p>Browse the <a href="/menu/">menu</a> or read the <a href="/docs">API docs</a>.</p>
    </body>
    </html>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func renderSwaggerUI(w http.ResponseWriter, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
