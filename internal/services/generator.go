package services

import (
	"context"

	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/storage"
	"github.com/mkravets/link-shortener/internal/util"
)

const codeLength = 8

// Generator produces short codes that are unique against the store at
// creation time. With 62^8 possible codes the expected attempt count
// stays near one even at large record counts; MaxAttempts bounds the
// collision retry loop all the same.
type Generator struct {
	Store       storage.Store
	MaxAttempts int
}

func (g *Generator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.MaxAttempts; i++ {
		code := util.RandomString(codeLength)
		exists, err := g.Store.ShortURLExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", models.ErrGenerationExhausted
}
