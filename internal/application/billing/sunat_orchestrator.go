package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sunat/internal/domain"
	"github.com/jhoicas/facturacion-sunat/internal/domain/entity"
	domsunat "github.com/jhoicas/facturacion-sunat/internal/domain/sunat"
	infrasunat "github.com/jhoicas/facturacion-sunat/internal/infrastructure/sunat"
	"github.com/jhoicas/facturacion-sunat/pkg/logger"
)

// SunatOrchestrator orquesta el envío de una factura a SUNAT:
//
//	XML UBL 2.1 → Firma simulada → ZIP/Base64 → Sobre SOAP → billService → Resultado
//
// Cada llamada a Submit es independiente y secuencial; el orquestador no guarda estado
// entre envíos. Cualquier fallo de una etapa corta el pipeline y se traduce con Classify.
type SunatOrchestrator struct {
	builder     DocumentBuilder
	packager    DocumentPackager
	envelopes   EnvelopeBuilder
	sender      SunatSender
	interpreter ResponseInterpreter
	log         *logger.Logger
}

// NewSunatOrchestrator construye el orquestador. log nil descarta los logs.
func NewSunatOrchestrator(
	builder DocumentBuilder,
	packager DocumentPackager,
	envelopes EnvelopeBuilder,
	sender SunatSender,
	interpreter ResponseInterpreter,
	log *logger.Logger,
) *SunatOrchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &SunatOrchestrator{
		builder:     builder,
		packager:    packager,
		envelopes:   envelopes,
		sender:      sender,
		interpreter: interpreter,
		log:         log.Component("sunat-orchestrator"),
	}
}

// Submit ejecuta el pipeline completo y siempre devuelve un resultado bien formado.
// Un pánico en cualquier etapa se recupera como ERROR_INTERNO.
func (o *SunatOrchestrator) Submit(ctx context.Context, req *entity.InvoiceRequest) (result entity.SubmissionResult) {
	lg := o.log.With().Str("correlation_id", uuid.NewString()).Logger()

	defer func() {
		if r := recover(); r != nil {
			lg.Error().Interface("panic", r).Msg("sunat: pánico en el pipeline")
			result = Classify(fmt.Errorf("pánico en el pipeline: %v", r))
		}
	}()

	if req == nil {
		return Classify(fmt.Errorf("%w: factura nula", domain.ErrInvalidInput))
	}
	docNumber := domsunat.DocumentNumber(req)
	lg = lg.With().Str("documento", docNumber).Logger()

	// 1. XML UBL sin firma
	unsigned, err := o.builder.Build(req)
	if err != nil {
		return stageFailure(lg, "xml-build", err)
	}

	// 2. Firma simulada + ZIP + Base64
	pkg, err := o.packager.Package(unsigned, req)
	if err != nil {
		return stageFailure(lg, "package", err)
	}
	lg.Debug().Str("archivo", pkg.FileName).Str("hash", pkg.Hash).Str("digest", pkg.Digest).
		Msg("sunat: documento empaquetado")

	// 3. Sobre SOAP
	envelope, err := o.envelopes.BuildSendBill(pkg, req.Issuer)
	if err != nil {
		return stageFailure(lg, "envelope", err)
	}

	// 4. Envío (con reintentos dentro del transporte)
	raw, err := o.sender.Send(ctx, envelope)
	if err != nil {
		return stageFailure(lg, "send", err)
	}

	// 5. Interpretación
	res, err := o.interpreter.Interpret(raw, pkg, docNumber)
	if err != nil {
		if errors.Is(err, domain.ErrResponseParse) || errors.Is(err, domain.ErrUnrecognizedResponse) {
			lg.Warn().Err(err).Str("etapa", "interpret").Msg("sunat: respuesta no interpretable")
			return ParseFailure(err)
		}
		return stageFailure(lg, "interpret", err)
	}

	if res.Success {
		logCDR(lg, res.CDR)
	}
	lg.Info().Bool("success", res.Success).Str("codigo", res.Code).Str("archivo", pkg.FileName).
		Msg("sunat: envío procesado")
	return res
}

func stageFailure(lg zerolog.Logger, stage string, err error) entity.SubmissionResult {
	res := Classify(err)
	lg.Error().Err(err).Str("etapa", stage).Str("codigo", res.Code).Msg("sunat: envío fallido")
	return res
}

// logCDR registra el código del CDR si se puede decodificar. Es solo informativo.
func logCDR(lg zerolog.Logger, payload string) {
	if payload == "" {
		return
	}
	sum, err := infrasunat.DecodeCDR(payload)
	if err != nil {
		lg.Debug().Err(err).Msg("sunat: CDR no decodificable")
		return
	}
	lg.Info().Str("cdr_codigo", sum.ResponseCode).Str("cdr_descripcion", sum.Description).
		Strs("cdr_notas", sum.Notes).Msg("sunat: CDR recibido")
}
