package protocol

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/gateway_v1.schema.json
var gatewaySchema []byte

const schemaURL = "gateway_v1.schema.json"

var (
	schemaOnce sync.Once
	compiled   *jsonschema.Schema
	compileErr error
)

func inboundSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(gatewaySchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Inbound is a decoded client message that passed schema validation.
type Inbound struct {
	Type      string
	Join      JoinQueue
	Move      MakeMove
	Reconnect ReconnectGame
}

// DecodeInbound validates raw against the gateway schema and decodes it
// into the matching message struct.
func DecodeInbound(raw []byte) (Inbound, error) {
	schema, err := inboundSchema()
	if err != nil {
		return Inbound{}, fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Inbound{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return Inbound{}, err
	}
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return Inbound{}, err
	}
	in := Inbound{Type: base.Type}
	switch base.Type {
	case TypeJoinQueue:
		err = json.Unmarshal(raw, &in.Join)
	case TypeMakeMove:
		err = json.Unmarshal(raw, &in.Move)
	case TypeReconnectGame:
		err = json.Unmarshal(raw, &in.Reconnect)
	default:
		err = fmt.Errorf("unknown message type %q", base.Type)
	}
	return in, err
}
