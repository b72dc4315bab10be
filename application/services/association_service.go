package services

import (
	"context"

	"go.uber.org/zap"

	"obras-backend/application/ports"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

var associationKinds = map[string]bool{
	ports.AssociationFiscalProject:  true,
	ports.AssociationEmpresaProject: true,
	ports.AssociationProjectFolder:  true,
	ports.AssociationProjectBairro:  true,
}

// AssociationService links and unlinks child entities (fiscais, empresas,
// obras) to their parents.
type AssociationService struct {
	client   ports.UpstreamClient
	notifier ports.Notifier
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewAssociationService creates the association service.
func NewAssociationService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *AssociationService {
	return &AssociationService{
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Associate links childID to parentID under the given kind.
func (s *AssociationService) Associate(ctx context.Context, kind, childID, parentID string) error {
	if err := validateAssociation(kind, childID, parentID); err != nil {
		return err
	}

	if err := s.client.Associate(ctx, kind, childID, parentID); err != nil {
		s.metrics.RecordSubmission(kind, string(StateFailed))
		return err
	}

	s.metrics.RecordSubmission(kind, string(StateSuccess))
	s.notifier.Success("vínculo criado")
	return nil
}

// Dissociate removes the link after user confirmation. Returns false when
// the user declined and nothing was done.
func (s *AssociationService) Dissociate(ctx context.Context, kind, childID, parentID string) (bool, error) {
	if err := validateAssociation(kind, childID, parentID); err != nil {
		return false, err
	}

	if !s.notifier.Confirm("remover este vínculo?") {
		return false, nil
	}

	if err := s.client.Dissociate(ctx, kind, childID, parentID); err != nil {
		s.metrics.RecordSubmission(kind, string(StateFailed))
		return false, err
	}

	s.metrics.RecordSubmission(kind, string(StateSuccess))
	s.notifier.Success("vínculo removido")
	return true, nil
}

func validateAssociation(kind, childID, parentID string) error {
	if !associationKinds[kind] {
		return apperrors.NewValidationError("tipo de vínculo desconhecido: " + kind)
	}
	if childID == "" || parentID == "" {
		return apperrors.NewValidationError("vínculo exige os dois identificadores")
	}
	return nil
}
