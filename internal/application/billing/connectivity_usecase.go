package billing

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/facturacion-sunat/internal/application/dto"
)

// DefaultPingTimeout límite de la verificación de conectividad.
const DefaultPingTimeout = 10 * time.Second

// SunatPinger verifica que el billService responde.
type SunatPinger interface {
	Ping(ctx context.Context) error
}

// ConnectivityUseCase verifica la conectividad con el billService configurado.
type ConnectivityUseCase struct {
	pinger  SunatPinger
	cfg     InvoiceConfig
	clock   clockwork.Clock
	timeout time.Duration
}

// NewConnectivityUseCase construye el caso de uso. clock nil usa el reloj real;
// timeout <= 0 usa DefaultPingTimeout.
func NewConnectivityUseCase(pinger SunatPinger, cfg InvoiceConfig, clock clockwork.Clock, timeout time.Duration) *ConnectivityUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	return &ConnectivityUseCase{pinger: pinger, cfg: cfg, clock: clock, timeout: timeout}
}

// Check hace una llamada real al endpoint y mide la latencia.
func (uc *ConnectivityUseCase) Check(ctx context.Context) dto.PingResponse {
	ctx, cancel := clockwork.WithTimeout(ctx, uc.clock, uc.timeout)
	defer cancel()

	start := uc.clock.Now()
	err := uc.pinger.Ping(ctx)
	out := dto.PingResponse{
		SunatAccesible: err == nil,
		Ambiente:       environmentLabel(uc.cfg.Environment),
		URLSunat:       uc.cfg.Endpoint,
		LatenciaMS:     uc.clock.Since(start).Milliseconds(),
		Timestamp:      uc.clock.Now().Format(time.RFC3339),
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Mensaje = "Conectividad con SUNAT OK"
	return out
}
