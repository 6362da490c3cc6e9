package interfaces

import "github.com/gagliardetto/solana-go/rpc"

// EndpointSelector names how the RPC endpoint was chosen. The single
// letter aliases accepted on the command line are parsed once, here, so
// the rest of the client never branches on magic strings.
type EndpointSelector int

const (
	// EndpointDefault falls back to the URL in the user's Solana CLI
	// config file.
	EndpointDefault EndpointSelector = iota
	EndpointMainnet
	EndpointDevnet
	EndpointLocalnet
	EndpointCustom
)

// Endpoint is a resolved endpoint selection. Custom holds the verbatim
// URL when Selector is EndpointCustom.
type Endpoint struct {
	Selector EndpointSelector
	Custom   string
}

// ParseEndpoint maps a --url flag value to an Endpoint: "m" mainnet,
// "d" devnet, "l" localnet, empty means the user config default, and
// anything else is used verbatim as the RPC URL.
func ParseEndpoint(s string) Endpoint {
	switch s {
	case "":
		return Endpoint{Selector: EndpointDefault}
	case "m":
		return Endpoint{Selector: EndpointMainnet}
	case "d":
		return Endpoint{Selector: EndpointDevnet}
	case "l":
		return Endpoint{Selector: EndpointLocalnet}
	default:
		return Endpoint{Selector: EndpointCustom, Custom: s}
	}
}

// URL resolves the endpoint to an RPC URL, using defaultURL for
// EndpointDefault.
func (e Endpoint) URL(defaultURL string) string {
	switch e.Selector {
	case EndpointMainnet:
		return rpc.MainNetBeta_RPC
	case EndpointDevnet:
		return rpc.DevNet_RPC
	case EndpointLocalnet:
		return "http://localhost:8899"
	case EndpointCustom:
		return e.Custom
	default:
		return defaultURL
	}
}
