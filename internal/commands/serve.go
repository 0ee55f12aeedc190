package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskwell/internal/db"
	"taskwell/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskwell web server",
	Long: `Start the HTTP server that renders the task list pages.

The lifecycle is init, serve, shutdown: the database is opened and
migrated before the first request, and SIGINT/SIGTERM drain in-flight
requests before the process exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		defer db.Close()

		if !viper.GetBool("debug") {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:    viper.GetString("addr"),
			Handler: web.NewRouter(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("taskwell listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("server error: %v", err)
			}
		}()

		<-ctx.Done()
		stop()
		log.Println("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("debug", false, "Verbose request logging")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("debug", serveCmd.Flags().Lookup("debug"))
}
