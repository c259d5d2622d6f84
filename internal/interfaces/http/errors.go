package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/application"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/tdex-network/stationd/pkg/stationmath"
)

type errorResponse struct {
	Error string `json:"error"`
}

var (
	notFoundErrors = []error{
		domain.ErrPoolNotFound,
		ports.ErrSubscriptionNotFound,
	}
	conflictErrors = []error{
		domain.ErrPoolAlreadyExists,
		domain.ErrPoolAlreadyInitialized,
		domain.ErrPoolNotInitialized,
		application.ErrPoolNotEmpty,
	}
	preconditionErrors = []error{
		application.ErrPoolNotPriced,
		application.ErrWebhookManagerNotInitialized,
	}
	badRequestErrors = []error{
		application.ErrInvalidRequest,
		application.ErrPricesDimension,
		payload.ErrUnknownKind,
		payload.ErrMalformedPayload,
		payload.ErrInvalidRequest,
		stationmath.ErrDimensionMismatch,
		stationmath.ErrInvalidPrice,
		stationmath.ErrDivisionByZero,
		stationmath.ErrInsufficientBalance,
		stationmath.ErrArithmeticOverflow,
		domain.ErrPoolInvalidName,
		domain.ErrPoolInvalidTokens,
		domain.ErrPoolInvalidToken,
		domain.ErrPoolDuplicatedToken,
		domain.ErrPoolInvalidAmp,
		domain.ErrPoolUnknownToken,
		domain.ErrPoolZeroAmount,
		domain.ErrPoolZeroShares,
		domain.ErrPoolInsufficientShares,
		domain.ErrPoolUnknownRequest,
		domain.ErrPoolInvalidSwapKind,
		domain.ErrPriceVectorEmpty,
		domain.ErrPriceVectorInvalidPrice,
	}
)

// statusFromError maps the errors returned by the app services to http
// status codes. Unknown errors are internal ones.
func statusFromError(err error) int {
	for _, group := range []struct {
		errs   []error
		status int
	}{
		{notFoundErrors, http.StatusNotFound},
		{conflictErrors, http.StatusConflict},
		{preconditionErrors, http.StatusPreconditionFailed},
		{badRequestErrors, http.StatusBadRequest},
	} {
		for _, e := range group.errs {
			if errors.Is(err, e) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

func writeAppError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}
