package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/DRSN-tech/price-compare/internal/client"
	"github.com/spf13/cobra"
)

func newShellCmd(d *deps) *cobra.Command {
	var guest bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive search: every line is a new search",
		Long: "Interactive search. Each line starts a new search and cancels the previous one;\n" +
			"results of superseded searches are discarded. Type :q or press Ctrl-D to exit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := searchSession(d, guest)
			if err != nil {
				return err
			}

			out := &syncWriter{w: cmd.OutOrStdout()}
			width := d.v.GetInt(flagChartWidth)
			searcher := client.NewSearcher(d.comparison, d.logger, func(snap client.Snapshot) {
				switch snap.State {
				case client.StateLoading:
					fmt.Fprintf(out, "searching %q...\n", snap.Query)
				case client.StateResults:
					_ = printResults(out, snap.Result, width)
				case client.StateError:
					fmt.Fprintf(out, "search %q failed: %s\n", snap.Query, FriendlyError(snap.Err))
				}
			})

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case ":q", "exit", "quit":
					searcher.Wait()
					return nil
				}

				searcher.Submit(cmd.Context(), session, line)
			}

			searcher.Wait()
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&guest, "guest", false, "search as a guest even when logged in")

	return cmd
}

// syncWriter сериализует запись из горутин поиска.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}
