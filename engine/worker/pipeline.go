package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oraclenet/offchain-worker/model/chain"
)

// Pipeline stages, as reported to the metrics collaborator when a pipeline
// aborts.
const (
	StageDiscover = "discover"
	StageFetch    = "fetch"
	StageBuild    = "build"
	StageSign     = "sign"
	StageSubmit   = "submit"
)

// runPipeline executes the fetch, build, sign and submit sequence for a
// single discovered key. Every failure terminates only this pipeline: it is
// logged, counted, and otherwise dropped. There is no requeue within the
// block; the key's next discovery is its retry.
func (e *Engine) runPipeline(ctx context.Context, log zerolog.Logger, key chain.KeyHandle) {
	log = log.With().Str("account", key.Account.ShortString()).Logger()

	datum, err := e.source.Fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch datum")
		e.metrics.PipelineFailure(StageFetch)
		return
	}
	e.metrics.DatumFetched(len(datum.Payload))

	pending, err := e.buildExtrinsic(key, datum)
	if err != nil {
		log.Warn().Err(err).Msg("could not build extrinsic")
		e.metrics.PipelineFailure(StageBuild)
		return
	}

	signed, err := e.signExtrinsic(key, pending)
	if err != nil {
		log.Warn().Err(err).Uint64("nonce", pending.Nonce).Msg("could not sign extrinsic")
		e.metrics.PipelineFailure(StageSign)
		return
	}

	err = e.pool.Submit(signed)
	if err != nil {
		log.Warn().Err(err).Uint64("nonce", pending.Nonce).Msg("transaction pool rejected extrinsic")
		e.metrics.PipelineFailure(StageSubmit)
		return
	}

	e.metrics.ExtrinsicSubmitted()
	extrinsicID := signed.ID()
	log.Info().
		Uint64("nonce", pending.Nonce).
		Hex("extrinsic_id", extrinsicID[:]).
		Msg("submitted fetched datum")
}

// buildExtrinsic reads the account's nonce fresh from runtime state and
// embeds the datum as call data. The nonce is never cached across pipeline
// runs; if two discovered keys map to the same account both pipelines read
// the same nonce and the pool rejects the second submission downstream
// (avoiding duplicate-tagged keys per account is the keystore's
// responsibility).
func (e *Engine) buildExtrinsic(key chain.KeyHandle, datum *chain.Datum) (chain.PendingExtrinsic, error) {
	nonce, err := e.accounts.NonceAt(key.Account)
	if err != nil {
		return chain.PendingExtrinsic{}, fmt.Errorf("could not read nonce for account %s: %w", key.Account.ShortString(), err)
	}
	return chain.PendingExtrinsic{
		Account: key.Account,
		Nonce:   nonce,
		Call:    datum.Payload,
	}, nil
}

// signExtrinsic requests a signature from the keystore over the extrinsic's
// canonical encoding. Signing can fail if the key was removed between
// discovery and signing.
func (e *Engine) signExtrinsic(key chain.KeyHandle, pending chain.PendingExtrinsic) (*chain.SignedExtrinsic, error) {
	payload, err := pending.SigningPayload()
	if err != nil {
		return nil, fmt.Errorf("could not compute signing payload: %w", err)
	}
	sig, err := e.keystore.Sign(key.Public, payload)
	if err != nil {
		return nil, fmt.Errorf("could not sign with key %s: %w", key.Public, err)
	}
	return &chain.SignedExtrinsic{
		Body:      pending,
		Public:    key.Public,
		Signature: sig,
	}, nil
}
