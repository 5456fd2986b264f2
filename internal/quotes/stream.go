// Package quotes delivers realtime B3 quotes. The primary path is a
// websocket stream against the backend feed; a REST poller and an offline
// Yahoo Finance source cover the cases where the socket is unavailable.
package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/debug"
	"github.com/painelfin/painelgo/internal/models"
)

// ErrReconnectExhausted is reported once the stream gives up reconnecting.
var ErrReconnectExhausted = errors.New("Máximo de tentativas de reconexão atingido")

// Connection states as exposed to the UI.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	handshakeTimeout  = 10 * time.Second
	reconnectStep     = 3 * time.Second
	maxReconnectTries = 5
)

// Events emitted by the client.
const (
	evSubscribe       = "subscribe_quotes"
	evUnsubscribe     = "unsubscribe_quotes"
	evGetQuote        = "get_quote"
	evGetMarketStatus = "get_market_status"
)

// Events emitted by the server.
const (
	evConnectionStatus     = "connection_status"
	evPriceUpdate          = "price_update"
	evSubscribed           = "subscription_confirmed"
	evUnsubscribed         = "unsubscription_confirmed"
	evQuoteResponse        = "quote_response"
	evMarketStatusResponse = "market_status_response"
	evError                = "error"
)

// envelope is the frame shape on both directions of the socket.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// wireQuote is the payload inside price_update and quote_response frames.
type wireQuote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Bid           float64 `json:"bid"`
	Ask           float64 `json:"ask"`
	Last          float64 `json:"last"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	Timestamp     string  `json:"timestamp"`
	Source        string  `json:"source"`
}

func (w wireQuote) toQuote() models.Quote {
	src := w.Source
	if src == "" {
		src = models.QuoteSourceSimulated
	}
	return models.Quote{
		Ticker:        w.Ticker,
		Price:         decimalFromFloat(w.Price),
		Bid:           decimalFromFloat(w.Bid),
		Ask:           decimalFromFloat(w.Ask),
		Last:          decimalFromFloat(w.Last),
		Change:        decimalFromFloat(w.Change),
		ChangePercent: decimalFromFloat(w.ChangePercent),
		Volume:        w.Volume,
		Timestamp:     w.Timestamp,
		Source:        src,
	}
}

// Handlers receive stream events. All callbacks are optional and are invoked
// from the stream's own goroutine, so they must not block.
type Handlers struct {
	OnQuote  func(models.Quote)
	OnStatus func(models.MarketStatus)
	OnState  func(State)
	OnError  func(error)
}

// Stream is a reconnecting websocket client for the realtime quote feed.
// Subscriptions survive reconnects: the desired ticker set is replayed every
// time the socket comes back up.
type Stream struct {
	url      string
	dialer   *websocket.Dialer
	handlers Handlers

	retryStep  time.Duration
	maxRetries int

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	desired map[string]bool
	latest  map[string]models.Quote
	closed  bool

	done chan struct{}
}

// NewStream builds a stream against the given ws:// URL. Nothing connects
// until Start is called.
func NewStream(url string, handlers Handlers) *Stream {
	return &Stream{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		handlers:   handlers,
		retryStep:  reconnectStep,
		maxRetries: maxReconnectTries,
		desired:    make(map[string]bool),
		latest:     make(map[string]models.Quote),
		done:       make(chan struct{}),
	}
}

// Start connects and keeps the stream alive in the background, reconnecting
// with a growing delay until the retry budget runs out.
func (s *Stream) Start() {
	go s.run()
}

func (s *Stream) run() {
	attempt := 0
	for {
		if s.isClosed() {
			return
		}
		s.setState(StateConnecting)
		conn, _, err := s.dialer.Dial(s.url, http.Header{})
		if err != nil {
			attempt++
			if attempt >= s.maxRetries {
				s.setState(StateDisconnected)
				s.emitError(ErrReconnectExhausted)
				return
			}
			s.emitError(fmt.Errorf("conexão com o feed falhou (tentativa %d/%d): %w", attempt, s.maxRetries, err))
			debug.Logf("feed: retry %d/%d in %s", attempt, s.maxRetries, time.Duration(attempt)*s.retryStep)
			select {
			case <-time.After(time.Duration(attempt) * s.retryStep):
			case <-s.done:
				return
			}
			continue
		}

		attempt = 0
		debug.Logf("feed: connected to %s", s.url)
		s.attach(conn)
		s.setState(StateConnected)
		s.flushSubscriptions()

		err = s.readLoop(conn)
		s.detach(conn)
		if s.isClosed() {
			return
		}
		s.setState(StateDisconnected)
		if err != nil {
			s.emitError(fmt.Errorf("feed de cotações desconectado: %w", err))
		}
	}
}

func (s *Stream) readLoop(conn *websocket.Conn) error {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		s.dispatch(env)
	}
}

func (s *Stream) dispatch(env envelope) {
	switch env.Event {
	case evPriceUpdate, evQuoteResponse:
		var w wireQuote
		if err := json.Unmarshal(env.Data, &w); err != nil {
			s.emitError(fmt.Errorf("cotação ilegível no feed: %w", err))
			return
		}
		q := w.toQuote()
		s.mu.Lock()
		// Last write wins; a stale frame arriving after unsubscribe is
		// dropped instead of resurrecting the ticker.
		keep := s.desired[q.Ticker]
		if keep {
			s.latest[q.Ticker] = q
		}
		s.mu.Unlock()
		if keep && s.handlers.OnQuote != nil {
			s.handlers.OnQuote(q)
		}
	case evMarketStatusResponse, evConnectionStatus:
		var w struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal(env.Data, &w); err != nil {
			return
		}
		if s.handlers.OnStatus != nil {
			s.handlers.OnStatus(models.MarketStatus{
				Status:      w.Status,
				Description: models.DescribeMarketStatus(w.Status),
				Timestamp:   w.Timestamp,
			})
		}
	case evSubscribed, evUnsubscribed:
		// Confirmations carry no state the client does not already hold.
	case evError:
		var w struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Data, &w); err == nil && w.Message != "" {
			s.emitError(errors.New(w.Message))
		}
	}
}

// Subscribe adds tickers to the stream. When the socket is down the tickers
// are queued and sent as soon as the connection is up.
func (s *Stream) Subscribe(tickers ...string) error {
	s.mu.Lock()
	fresh := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t == "" || s.desired[t] {
			continue
		}
		s.desired[t] = true
		fresh = append(fresh, t)
	}
	conn := s.conn
	s.mu.Unlock()

	if len(fresh) == 0 || conn == nil {
		return nil
	}
	return s.send(conn, evSubscribe, map[string]any{"tickers": fresh})
}

// Unsubscribe drops tickers immediately on the client side and tells the
// server when connected. Local state does not wait for the confirmation.
func (s *Stream) Unsubscribe(tickers ...string) error {
	s.mu.Lock()
	dropped := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if !s.desired[t] {
			continue
		}
		delete(s.desired, t)
		delete(s.latest, t)
		dropped = append(dropped, t)
	}
	conn := s.conn
	s.mu.Unlock()

	if len(dropped) == 0 || conn == nil {
		return nil
	}
	return s.send(conn, evUnsubscribe, map[string]any{"tickers": dropped})
}

// RequestQuote asks the server for a one-off quote_response frame.
func (s *Stream) RequestQuote(ticker string) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return errors.New("feed de cotações desconectado")
	}
	return s.send(conn, evGetQuote, map[string]any{"ticker": ticker})
}

// RequestMarketStatus asks the server for a market_status_response frame.
func (s *Stream) RequestMarketStatus() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return errors.New("feed de cotações desconectado")
	}
	return s.send(conn, evGetMarketStatus, map[string]any{})
}

// Snapshot returns a copy of the latest quote per subscribed ticker.
func (s *Stream) Snapshot() map[string]models.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.Quote, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return out
}

// Latest returns the last quote seen for one ticker.
func (s *Stream) Latest(ticker string) (models.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.latest[ticker]
	return q, ok
}

// State reports the current connection state.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close shuts the stream down for good.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.state = StateDisconnected
	close(s.done)
	s.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (s *Stream) flushSubscriptions() {
	s.mu.Lock()
	pending := make([]string, 0, len(s.desired))
	for t := range s.desired {
		pending = append(pending, t)
	}
	conn := s.conn
	s.mu.Unlock()

	if len(pending) == 0 || conn == nil {
		return
	}
	if err := s.send(conn, evSubscribe, map[string]any{"tickers": pending}); err != nil {
		s.emitError(fmt.Errorf("falha ao reinscrever tickers: %w", err))
	}
}

func (s *Stream) send(conn *websocket.Conn, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return conn.WriteJSON(envelope{Event: event, Data: raw})
}

func (s *Stream) attach(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *Stream) detach(conn *websocket.Conn) {
	conn.Close()
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Stream) setState(st State) {
	s.mu.Lock()
	changed := s.state != st
	s.state = st
	s.mu.Unlock()
	if changed && s.handlers.OnState != nil {
		s.handlers.OnState(st)
	}
}

func (s *Stream) emitError(err error) {
	if s.handlers.OnError != nil {
		s.handlers.OnError(err)
	}
}

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
