// Package chain talks to a MultiversX gateway. It submits reputation
// scores to the on-chain contract (ReputationSink) and resolves the
// wallet address linked to a social account via a contract view query.
package chain
