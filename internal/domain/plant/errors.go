package plant

import (
	"fmt"
	"strings"

	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

// ConfigurationError is returned when a plant configuration cannot be constructed.
// It names every invalid field, not only the first one found.
type ConfigurationError struct {
	*shared.DomainError
	Problems shared.ValidationErrors
}

func NewConfigurationError(problems shared.ValidationErrors) *ConfigurationError {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	return &ConfigurationError{
		DomainError: shared.NewDomainError("invalid plant configuration: " + strings.Join(msgs, "; ")),
		Problems:    problems,
	}
}

// Fields returns the invalid field names
func (e *ConfigurationError) Fields() []string {
	return e.Problems.Fields()
}

// NotFoundError means an entity was not in the partition a mutator expected it in
type NotFoundError struct {
	*shared.DomainError
	Kind      string
	ID        string
	Partition Partition
}

func NewNotFoundError(kind, id string, partition Partition) *NotFoundError {
	return &NotFoundError{
		DomainError: shared.NewDomainError(fmt.Sprintf("%s %q is not in the %s partition", kind, id, partition)),
		Kind:        kind,
		ID:          id,
		Partition:   partition,
	}
}

// InsufficientInventoryError is returned when consuming more parts than are on hand
type InsufficientInventoryError struct {
	*shared.DomainError
	PartNumber string
	OnHand     int
	Requested  int
}

func NewInsufficientInventoryError(partNumber string, onHand, requested int) *InsufficientInventoryError {
	return &InsufficientInventoryError{
		DomainError: shared.NewDomainError(fmt.Sprintf(
			"insufficient inventory of part %s: on hand %d, requested %d", partNumber, onHand, requested)),
		PartNumber: partNumber,
		OnHand:     onHand,
		Requested:  requested,
	}
}

// CatalogError is returned when a BOM or price lookup has no catalog entry
type CatalogError struct {
	*shared.DomainError
	Catalog    string
	PartNumber string
}

func NewCatalogError(catalog, partNumber string) *CatalogError {
	return &CatalogError{
		DomainError: shared.NewDomainError(fmt.Sprintf("part %s is not in the %s catalog", partNumber, catalog)),
		Catalog:     catalog,
		PartNumber:  partNumber,
	}
}

// NumberAlreadyAssignedError is returned when an already numbered entity is numbered again
type NumberAlreadyAssignedError struct {
	*shared.DomainError
	Kind      string
	Current   string
	Attempted string
}

func NewNumberAlreadyAssignedError(kind, current, attempted string) *NumberAlreadyAssignedError {
	return &NumberAlreadyAssignedError{
		DomainError: shared.NewDomainError(fmt.Sprintf(
			"%s %s cannot be assigned a new number %s", kind, current, attempted)),
		Kind:      kind,
		Current:   current,
		Attempted: attempted,
	}
}
