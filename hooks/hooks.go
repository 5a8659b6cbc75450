// Package hooks defines the four-phase customizer contract named in spec §6:
// the interface a host TLS stack calls, in order, while constructing a
// ClientHello.
//
// Grounded on the teacher's httpclient.Client design (a single struct
// implementing an http.RoundTripper-shaped contract with well-defined
// construction phases), generalized here into an explicit capability
// interface with a no-op embeddable default, per SPEC_FULL.md §6's note that
// the source's single "apply customizations" entry point is re-expressed as
// a tagged four-method contract so callers override only what they need.
package hooks

import "custls"

// ConfigParams is what on_config_resolve receives: enough of the pending
// connection's identity for a customizer to choose a template or apply
// jitter before any cipher/extension list exists yet.
type ConfigParams struct {
	Host string
	Port uint16
}

// ClientHelloPayload is the mutable struct on_struct_ready receives: the
// fully-ordered cipher and extension lists plus per-extension encoded bytes,
// ready for a Padding extension or other struct-level addition.
type ClientHelloPayload struct {
	CipherSuites   []uint16
	ExtensionOrder []uint16
	ExtensionBytes map[uint16][]byte
}

// Customizer is the host-facing four-phase contract. Every CORE error
// returned from a phase must already be a *custls.Error (or wrap one) so
// ToHostError can convert it losslessly.
type Customizer interface {
	// OnConfigResolve runs first, before any cipher/extension list exists.
	OnConfigResolve(params ConfigParams) error
	// OnComponentsReady runs with mutable cipher and extension ID lists.
	OnComponentsReady(ciphers *[]uint16, extensionOrder *[]uint16) error
	// OnStructReady runs with the assembled, still-mutable payload.
	OnStructReady(payload *ClientHelloPayload) error
	// TransformWireBytes runs last, over the fully encoded ClientHello bytes.
	TransformWireBytes(wire []byte) ([]byte, error)
}

// NoOp is embeddable in a custom Customizer so callers only override the
// phases they care about; every method here is a pass-through that never
// errors.
type NoOp struct{}

func (NoOp) OnConfigResolve(ConfigParams) error                  { return nil }
func (NoOp) OnComponentsReady(*[]uint16, *[]uint16) error        { return nil }
func (NoOp) OnStructReady(*ClientHelloPayload) error             { return nil }
func (NoOp) TransformWireBytes(wire []byte) ([]byte, error)      { return wire, nil }

var _ Customizer = NoOp{}

// wrapHookError wraps cause in a HookError-kinded *custls.Error, returning nil
// for a nil cause. It is unexported, so only code inside package hooks can
// use it.
func wrapHookError(cause error) error {
	if cause == nil {
		return nil
	}
	return custls.Wrap(custls.HookError, cause, "customizer hook failed")
}
