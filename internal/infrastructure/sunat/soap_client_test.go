package sunat_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
)

const okBody = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><br:sendBillResponse xmlns:br="http://service.sunat.gob.pe"><applicationResponse>BASE64DATA</applicationResponse></br:sendBillResponse></soapenv:Body></soapenv:Envelope>`

func fastPolicy(attempts int) sunat.RetryPolicy {
	return sunat.RetryPolicy{MaxAttempts: attempts, Delay: 5 * time.Millisecond, Budget: 5 * time.Second}
}

func TestSend_Exitoso(t *testing.T) {
	var gotContentType, gotAction, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAction = r.Header.Get("SOAPAction")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	c := sunat.NewSOAPSunatClient(srv.URL, sunat.WithRetryPolicy(fastPolicy(3)))
	body, err := c.Send(context.Background(), "<envelope/>")

	require.NoError(t, err)
	assert.Equal(t, okBody, string(body))
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)
	assert.Equal(t, `""`, gotAction)
	assert.Equal(t, "<envelope/>", gotBody)
	assert.Equal(t, srv.URL, c.Endpoint())
}

func TestSend_ReintentaHastaExito(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	c := sunat.NewSOAPSunatClient(srv.URL, sunat.WithRetryPolicy(fastPolicy(3)))
	body, err := c.Send(context.Background(), "<envelope/>")

	require.NoError(t, err)
	assert.Equal(t, okBody, string(body))
	assert.Equal(t, int32(3), hits.Load())
}

func TestSend_TodosLosIntentosFallan(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}))
	defer srv.Close()

	c := sunat.NewSOAPSunatClient(srv.URL, sunat.WithRetryPolicy(fastPolicy(3)))
	_, err := c.Send(context.Background(), "<envelope/>")

	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "status code 500")
	var se *sunat.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Body)
	assert.Equal(t, int32(3), hits.Load())
}

func TestSend_PresupuestoAgotado(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	c := sunat.NewSOAPSunatClient(srv.URL,
		sunat.WithClock(clock),
		sunat.WithRetryPolicy(sunat.RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Budget: 3 * time.Second}),
	)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Send(context.Background(), "<envelope/>")
		errCh <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// timer del primer intento + espera entre intentos
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
	clock.Advance(2 * time.Second)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, domain.ErrTimeout)
		assert.Contains(t, err.Error(), "status code 500")
	case <-ctx.Done():
		t.Fatal("Send no terminó")
	}
	assert.Equal(t, int32(2), hits.Load())
}

// hangingServer no responde hasta que el cliente corta la conexión o termina el test.
func hangingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	return srv
}

func TestSend_PresupuestoAgotadoEnUltimoIntento(t *testing.T) {
	srv := hangingServer(t)

	clock := clockwork.NewFakeClock()
	c := sunat.NewSOAPSunatClient(srv.URL,
		sunat.WithClock(clock),
		sunat.WithRetryPolicy(sunat.RetryPolicy{MaxAttempts: 1, Delay: time.Second, Budget: 200 * time.Millisecond}),
	)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Send(context.Background(), "<envelope/>")
		errCh <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(200 * time.Millisecond)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, domain.ErrTimeout)
		assert.NotErrorIs(t, err, domain.ErrTransport)
	case <-ctx.Done():
		t.Fatal("Send no terminó")
	}
}

func TestSend_PresupuestoAgotadoRelojReal(t *testing.T) {
	srv := hangingServer(t)

	c := sunat.NewSOAPSunatClient(srv.URL,
		sunat.WithRetryPolicy(sunat.RetryPolicy{MaxAttempts: 1, Delay: time.Second, Budget: 200 * time.Millisecond}),
	)
	start := time.Now()
	_, err := c.Send(context.Background(), "<envelope/>")

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrTransport)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSend_SinConexion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := sunat.NewSOAPSunatClient(url, sunat.WithRetryPolicy(fastPolicy(2)))
	_, err := c.Send(context.Background(), "<envelope/>")

	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSend_Cancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := sunat.NewSOAPSunatClient(srv.URL, sunat.WithRetryPolicy(fastPolicy(3)))
	_, err := c.Send(ctx, "<envelope/>")

	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	t.Run("wsdl disponible", func(t *testing.T) {
		var query atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query.Store(r.Method + " " + r.URL.RawQuery)
			_, _ = io.WriteString(w, "<definitions/>")
		}))
		defer srv.Close()

		require.NoError(t, sunat.NewSOAPSunatClient(srv.URL+"/billService").Ping(context.Background()))
		assert.Equal(t, "GET wsdl", query.Load())
	})

	t.Run("error del servidor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := sunat.NewSOAPSunatClient(srv.URL).Ping(context.Background())
		require.ErrorIs(t, err, domain.ErrTransport)
		var se *sunat.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	})

	t.Run("sin conexion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		err := sunat.NewSOAPSunatClient(url).Ping(context.Background())
		require.ErrorIs(t, err, domain.ErrTransport)
	})
}
