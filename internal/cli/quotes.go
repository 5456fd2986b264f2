package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/painelfin/painelgo/internal/display"
	"github.com/painelfin/painelgo/internal/models"
	"github.com/painelfin/painelgo/internal/quotes"
)

// newQuotesCmd creates the realtime quotes command. The default transport is
// the websocket stream; --poll switches to REST polling and --offline reads
// delayed quotes from Yahoo Finance without touching the backend.
func newQuotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes [TICKERS...]",
		Short: "Cotações em tempo real",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tickers := make([]string, 0, len(args))
			for _, t := range args {
				tickers = append(tickers, strings.ToUpper(strings.TrimSpace(t)))
			}

			offline, _ := cmd.Flags().GetBool("offline")
			poll, _ := cmd.Flags().GetBool("poll")
			interval, _ := cmd.Flags().GetDuration("interval")

			if offline {
				return runOfflineQuotes(tickers)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if poll {
				return runPolledQuotes(ctx, a, tickers, interval)
			}
			return runStreamedQuotes(ctx, a, tickers)
		},
	}
	cmd.Flags().Bool("poll", false, "Usa polling REST em vez do feed websocket")
	cmd.Flags().Bool("offline", false, "Cotações atrasadas do Yahoo Finance, sem backend")
	cmd.Flags().Duration("interval", 5*time.Second, "Intervalo do polling")
	return cmd
}

func runOfflineQuotes(tickers []string) error {
	batch, err := quotes.NewYahooSource().GetBatch(tickers)
	if err != nil {
		return err
	}
	fmt.Println(display.Title("Cotações (Yahoo Finance, atrasadas)"))
	fmt.Println(display.QuotesTable(batch))
	return nil
}

func runPolledQuotes(ctx context.Context, a *app, tickers []string, interval time.Duration) error {
	var (
		mu    sync.Mutex
		board = make(map[string]models.Quote)
	)
	poller := quotes.NewPoller(a.backend.Realtime, interval, quotes.Handlers{
		OnQuote: func(q models.Quote) {
			mu.Lock()
			board[q.Ticker] = q
			redrawBoard(board)
			mu.Unlock()
		},
		OnError: func(err error) { display.Error(err) },
	})

	display.Info("Polling REST a cada " + interval.String() + " (Ctrl+C para sair)")
	err := poller.Run(ctx, tickers)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runStreamedQuotes(ctx context.Context, a *app, tickers []string) error {
	var (
		mu    sync.Mutex
		board = make(map[string]models.Quote)
	)
	done := make(chan error, 1)

	var stream *quotes.Stream
	stream = quotes.NewStream(a.cfg.WSUrl, quotes.Handlers{
		OnQuote: func(q models.Quote) {
			mu.Lock()
			board[q.Ticker] = q
			redrawBoard(board)
			mu.Unlock()
		},
		OnStatus: func(s models.MarketStatus) {
			fmt.Println(display.MarketStatusLine(s))
		},
		OnState: func(st quotes.State) {
			display.Info("Feed: " + st.String())
			if st == quotes.StateConnected {
				stream.RequestMarketStatus()
			}
		},
		OnError: func(err error) {
			display.Error(err)
			if errors.Is(err, quotes.ErrReconnectExhausted) {
				done <- err
			}
		},
	})
	defer stream.Close()

	if err := stream.Subscribe(tickers...); err != nil {
		return err
	}
	stream.Start()

	display.Info("Assinando " + strings.Join(tickers, ", ") + " (Ctrl+C para sair)")
	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

func redrawBoard(board map[string]models.Quote) {
	fmt.Print("\033[2J\033[H")
	fmt.Println(display.Title("Cotações"))
	fmt.Println(display.QuotesTable(board))
}
