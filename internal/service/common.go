package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const formatoFecha = "2006-01-02"

func parseFecha(campo, valor string) (time.Time, error) {
	t, err := time.Parse(formatoFecha, valor)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s invalida: %w", campo, err)
	}
	return t, nil
}

func parseUUIDPtr(campo string, valor *string) (*uuid.UUID, error) {
	if valor == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*valor)
	if err != nil {
		return nil, fmt.Errorf("%s invalido: %w", campo, err)
	}
	return &id, nil
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}
