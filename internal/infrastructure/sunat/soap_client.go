package sunat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
)

// maxResponseBytes límite de lectura de la respuesta (el CDR viaja en base64).
const maxResponseBytes = 10 << 20

// RetryPolicy política de reintentos del envío: intentos totales, espera fija entre
// intentos y presupuesto total de tiempo para todos los intentos juntos.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Budget      time.Duration
}

// DefaultRetryPolicy 3 intentos, 2 s entre intentos, 120 s en total.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Budget: 120 * time.Second}
}

// StatusError respuesta HTTP fuera del rango 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sunat: status code %d", e.StatusCode)
}

// SOAPSunatClient envía el sobre SOAP al billService con reintentos acotados.
// Cualquier fallo del intento (red, timeout, HTTP no 2xx) se reintenta por igual.
type SOAPSunatClient struct {
	endpoint   string
	httpClient *http.Client
	clock      clockwork.Clock
	policy     RetryPolicy
}

// Option configura el cliente.
type Option func(*SOAPSunatClient)

// WithRetryPolicy reemplaza la política por defecto.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *SOAPSunatClient) { c.policy = p }
}

// WithClock inyecta el reloj (tests con clockwork.FakeClock).
func WithClock(clock clockwork.Clock) Option {
	return func(c *SOAPSunatClient) { c.clock = clock }
}

// WithHTTPClient inyecta el cliente HTTP.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SOAPSunatClient) { c.httpClient = hc }
}

// NewSOAPSunatClient construye el cliente para endpoint. El timeout de cada intento
// lo pone el presupuesto restante, no el http.Client.
func NewSOAPSunatClient(endpoint string, opts ...Option) *SOAPSunatClient {
	c := &SOAPSunatClient{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		clock:      clockwork.NewRealClock(),
		policy:     DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy.MaxAttempts < 1 {
		c.policy.MaxAttempts = 1
	}
	return c
}

// Endpoint URL de destino.
func (c *SOAPSunatClient) Endpoint() string { return c.endpoint }

// Send envía envelope y devuelve el cuerpo crudo de la respuesta.
//
// Retorna:
//   - domain.ErrTimeout si se agota el presupuesto, también durante el último intento
//     (o si la siguiente espera lo excedería).
//   - domain.ErrTransport si fallan todos los intentos o el llamador cancela ctx.
//
// Ambos envuelven el último fallo observado.
func (c *SOAPSunatClient) Send(ctx context.Context, envelope string) ([]byte, error) {
	deadline := c.clock.Now().Add(c.policy.Budget)
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		remaining := deadline.Sub(c.clock.Now())
		if remaining <= 0 {
			return nil, timeoutError(lastErr)
		}

		body, err := c.do(ctx, envelope, remaining)
		if err == nil {
			if attempt > 1 {
				log.Info().Int("intento", attempt).Str("endpoint", c.endpoint).Msg("sunat: envío exitoso tras reintento")
			}
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: envío cancelado: %w", domain.ErrTransport, err)
		}
		// El intento corre con el presupuesto restante: si venció, no queda tiempo para otro.
		if errors.Is(err, domain.ErrTimeout) {
			return nil, err
		}
		if !c.clock.Now().Before(deadline) {
			return nil, timeoutError(lastErr)
		}
		if attempt == c.policy.MaxAttempts {
			break
		}
		if !c.clock.Now().Add(c.policy.Delay).Before(deadline) {
			return nil, timeoutError(lastErr)
		}

		log.Warn().Err(err).
			Int("intento", attempt).
			Int("max_intentos", c.policy.MaxAttempts).
			Dur("espera", c.policy.Delay).
			Msg("sunat: intento fallido, reintentando")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: envío cancelado: %w", domain.ErrTransport, ctx.Err())
		case <-c.clock.After(c.policy.Delay):
		}
	}
	return nil, fmt.Errorf("%w: %d intentos fallidos: %w", domain.ErrTransport, c.policy.MaxAttempts, lastErr)
}

func timeoutError(last error) error {
	if last == nil {
		return domain.ErrTimeout
	}
	return fmt.Errorf("%w: %w", domain.ErrTimeout, last)
}

// do ejecuta un intento con timeout = presupuesto restante, medido con el reloj del cliente.
// Si ese timeout vence con ctx todavía vivo, el error envuelve domain.ErrTimeout.
func (c *SOAPSunatClient) do(ctx context.Context, envelope string, timeout time.Duration) ([]byte, error) {
	actx, cancel := clockwork.WithTimeout(ctx, c.clock, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodPost, c.endpoint, strings.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("soap: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `""`)
	req.Header.Set("Accept", "text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attemptExpired(ctx, actx) {
			return nil, fmt.Errorf("%w: soap: timeout del intento: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("soap: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if attemptExpired(ctx, actx) {
			return nil, fmt.Errorf("%w: soap: timeout leyendo respuesta: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("soap: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// attemptExpired indica si venció el contexto del intento sin que el llamador cancelara.
// Se consulta Done y no Err: Err de un contexto de FakeClock bloquea hasta que termina.
func attemptExpired(parent, attempt context.Context) bool {
	return isDone(attempt) && !isDone(parent)
}

func isDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ping comprueba que el billService responde a GET ?wsdl. Cualquier respuesta HTTP
// por debajo de 500 cuenta como accesible; no reintenta.
func (c *SOAPSunatClient) Ping(ctx context.Context) error {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+sep+"wsdl", nil)
	if err != nil {
		return fmt.Errorf("soap: crear ping: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: ping: %w", domain.ErrTransport, &StatusError{StatusCode: resp.StatusCode})
	}
	return nil
}
