// Package api holds the OpenAPI documents of the orchestrator and the delivery ledger.
// The server stubs in internal/generated are generated from them.
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:generate oapi-codegen -generate types,server -package servers -o ../internal/generated/servers/server.gen.go openapi.yaml
//go:generate oapi-codegen -generate types,server -package ledgerservers -o ../internal/generated/ledgerservers/server.gen.go ledger.yaml

var (
	//go:embed openapi.yaml
	ordersDoc []byte

	//go:embed ledger.yaml
	ledgerDoc []byte
)

// Orders returns the validated orchestrator document.
func Orders(ctx context.Context) (*openapi3.T, error) {
	return load(ctx, "orders", ordersDoc)
}

// Ledger returns the validated delivery ledger document.
func Ledger(ctx context.Context) (*openapi3.T, error) {
	return load(ctx, "ledger", ledgerDoc)
}

func load(ctx context.Context, name string, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load %s openapi document: %w", name, err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s openapi document: %w", name, err)
	}
	return doc, nil
}
