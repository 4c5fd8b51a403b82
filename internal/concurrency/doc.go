// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock primitives for the vector container: a cache-line padded mutex with
// blocking, bounded and spinning acquisition, the Global/Sharded/Dangerous
// strategies with ascending shard acquisition, a lazily built strategy
// manager and a FIFO wait queue for gated operations.
//
// Deadlock freedom rests on one rule: within a container, shard locks are
// always taken in ascending shard id order.
package concurrency
