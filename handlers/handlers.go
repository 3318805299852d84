// Package handlers wires the HTTP surface: one handler per trigger, each an
// independent request/response call. No state survives a request — the client
// owns the draft.
package handlers

import (
	"time"

	"carad/catalog"
)

const maxImageSize = 15 * 1024 * 1024 // 15 MB per photo

// Set from main at startup.
var (
	// PriceTimeout bounds one recalculate-price call end to end; distinct
	// from the transport timeout inside the LLM client.
	PriceTimeout = 180 * time.Second
	// AgentTimeout bounds the other agent calls.
	AgentTimeout = 120 * time.Second
	// Catalog is the static brand;model reference table.
	Catalog = catalog.Load("")
)
