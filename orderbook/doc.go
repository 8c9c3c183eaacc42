// Package orderbook maintains per-symbol limit order books reconstructed
// from an exchange market-data feed. It tracks price levels, FIFO order
// queues within each level, and fires synchronous listener callbacks on
// every mutation.
//
// The book is single-writer and single-threaded: callers drive it from
// one goroutine (the replay pipeline), and listener callbacks execute
// inline within the call that produced them. Orders and levels are
// allocated from stable, pool-backed storage — see pool.go.
package orderbook
