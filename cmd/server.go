package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/keggview/internal/server"
	"github.com/ziadkadry99/keggview/internal/site"
	"github.com/ziadkadry99/keggview/internal/watch"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the interactive pathway tree on a local web page",
	Long: `Starts a local web server with the collapsible pathway tree, the heatmap
legend and the link builder. With --watch local source files are reloaded
when they change and open pages refresh over the event websocket.`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serverCmd.Flags().Bool("watch", false, "reload local source files when they change")
	serverCmd.Flags().Bool("open", false, "open the page in the browser")
	serverCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	serverCmd.Flags().String("title", "", "page title")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	watchFlag, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")
	allowAll, _ := cmd.Flags().GetBool("allow-all")
	title, _ := cmd.Flags().GetString("title")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Port
	}
	srvCfg := server.Config{Port: port, Title: title, AllowAll: allowAll}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *server.Server
	sess, loadErr := loadSession(ctx, cfg, false)
	if loadErr != nil {
		slog.Error("pathway data unavailable", "error", loadErr)
		srv = server.NewUnavailable(srvCfg, loadErr)
	} else {
		srv = server.New(srvCfg, sess)
	}

	var w *watch.Watcher
	if sess != nil && (watchFlag || cfg.Watch) {
		w, err = watch.New([]string{cfg.PathwaySource, cfg.AbundanceSource}, func() {
			slog.Info("source changed, reloading", "component", "watch")
			// Reload publishes its own notice on failure.
			_ = sess.Reload(ctx)
		})
		if errors.Is(err, watch.ErrNothingToWatch) {
			slog.Warn("--watch ignored: both sources are remote")
		} else if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if w != nil {
		g.Go(func() error { return w.Run(gctx) })
		fmt.Fprintf(os.Stderr, "  Watching: %v\n", w.Files())
	}
	fmt.Fprintf(os.Stderr, "keggview server v%s starting on %s\n", Version, srv.Addr())
	if sess != nil {
		fmt.Fprintf(os.Stderr, "  Pathways: %d\n", sess.Catalog().Len())
		fmt.Fprintf(os.Stderr, "  Scores: %d\n", sess.Index().Len())
	}
	if open {
		if err := site.OpenBrowser(srv.Addr()); err != nil {
			slog.Warn("could not open browser", "error", err)
		}
	}

	return g.Wait()
}
