package calendar

import (
	"context"
	"strings"
	"time"
)

// Overlaps es el test estricto usado para prevenir conflictos:
// [aStart, aEnd) y [bStart, bEnd) comparten algún instante.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Intersects es el test inclusivo usado en matching: entradas pegadas
// (una termina cuando empieza la otra) también cuentan como candidatas.
func Intersects(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// OverlapChecker decide si un intervalo choca con entradas vivas del usuario.
type OverlapChecker struct {
	repo Repository
}

func NewOverlapChecker(repo Repository) *OverlapChecker {
	return &OverlapChecker{repo: repo}
}

// HasOverlap consulta al store por entradas no borradas de userID que se solapen con
// [start, end). excludeID (opcional) evita que un update choque consigo mismo.
func (c *OverlapChecker) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	ok, err := c.repo.HasOverlap(ctx, strings.TrimSpace(userID), start, end, strings.TrimSpace(excludeID))
	if err != nil {
		return false, storageErr("has_overlap", err)
	}
	return ok, nil
}
