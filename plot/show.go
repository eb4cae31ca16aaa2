package plot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pivolan/numchart/domain/models"
	uuid "github.com/satori/go.uuid"
)

// Handler отдает интерактивную страницу графика.
// Страница строится на каждый запрос, поэтому видны изменения после Update.
func Handler(c *models.Chart) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderHTML(c, w); err != nil {
			http.Error(w, "Error rendering chart", http.StatusInternalServerError)
			log.Printf("Error rendering chart %q: %v", c.MainTitle(), err)
		}
	})
}

// Show публикует график по адресу addr и блокируется, пока не завершится ctx
func Show(ctx context.Context, c *models.Chart, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	route := "/chart/" + uuid.NewV4().String()
	mux := http.NewServeMux()
	mux.Handle(route, Handler(c))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, route, http.StatusFound)
	})
	srv := &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Printf("chart %q: http://%s%s", c.MainTitle(), ln.Addr(), route)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error stopping server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error serving chart: %w", err)
	}
}

// ShowTerminal печатает серии графика псевдографикой
func ShowTerminal(w io.Writer, c *models.Chart, height int) error {
	var data [][]float64
	var names []string
	for _, s := range c.Series {
		if s.Len() == 0 {
			continue
		}
		data = append(data, s.YValues())
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return fmt.Errorf("error rendering chart: no points to draw")
	}
	if height <= 0 {
		height = 10
	}
	caption := c.MainTitle()
	if len(names) > 1 {
		caption = fmt.Sprintf("%s (%s)", caption, strings.Join(names, ", "))
	}
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}
