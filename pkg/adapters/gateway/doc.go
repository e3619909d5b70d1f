// Package gateway implements the HTTP client for the multi-provider
// chat-completion gateway.
//
// Model identifiers are provider-prefixed strings ("openai/gpt-4o-mini");
// the prefix is stripped before the call since routing is the gateway's
// concern. The client performs no retries and no pre-validation: parameter
// errors surface as server-side failures mapped onto the error taxonomy.
package gateway
