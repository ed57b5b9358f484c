package chain

import (
	"time"
)

// Datum is the external value retrieved for one pipeline run: the raw
// payload as served by the data source, plus the local fetch time. A datum
// is owned exclusively by the pipeline instance that fetched it and is never
// shared across keys or blocks.
type Datum struct {
	Payload   []byte
	FetchedAt time.Time
}
