package codec

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/tuneinsight/sntrup/core"
	"github.com/tuneinsight/sntrup/params"
	"github.com/tuneinsight/sntrup/ring"
	"github.com/tuneinsight/sntrup/sampling"
)

// ErrWorkerJoin is returned when a worker goroutine in BytesEncrypt or
// BytesDecrypt fails to complete cleanly (a panic recovered from a worker).
var ErrWorkerJoin = errors.New("codec: worker join error")

type indexedResult struct {
	index int
	data  []byte
	err   error
}

// workerCount bounds the goroutine pool to min(units, GOMAXPROCS),
// matching the source's min(chunk_count, num_cpus::get()).
func workerCount(units int) int {
	n := runtime.GOMAXPROCS(0)
	if units < n {
		return units
	}
	return n
}

// BytesEncrypt encodes plaintext into ternary symbols, splits them into
// weight-w chunks, encrypts each chunk with pk across a bounded pool of
// worker goroutines, and packs the concatenated ciphertext with its
// trailer (cut points + chunk seed).
func BytesEncrypt(plaintext []byte, pk *core.PublicKey, lit params.Literal, rng sampling.PRNG) ([]byte, error) {
	unlimited := BytesToTernary(plaintext)
	chunked, err := SplitIntoChunks(unlimited, lit, rng)
	if err != nil {
		return nil, err
	}

	chunkCount := len(chunked.Parts)
	if chunkCount == 0 {
		return Pack(nil, chunked.Cuts, chunked.Seed), nil
	}

	threadCount := workerCount(chunkCount)
	perThread := (chunkCount + threadCount - 1) / threadCount

	results := make(chan indexedResult, threadCount)
	var wg sync.WaitGroup

	for start, idx := 0, 0; start < chunkCount; start, idx = start+perThread, idx+1 {
		end := start + perThread
		if end > chunkCount {
			end = chunkCount
		}
		wg.Add(1)
		go func(threadIndex, start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- indexedResult{index: threadIndex, err: fmt.Errorf("%w: %v", ErrWorkerJoin, r)}
				}
			}()

			buf := make([]byte, 0, (end-start)*lit.RQBytes())
			for i := start; i < end; i++ {
				part := chunked.Parts[i]
				r3 := &ring.R3{P: lit.P, Coeffs: part}
				c := core.Encrypt(r3, pk)
				buf = append(buf, c.Bytes()...)
			}
			results <- indexedResult{index: threadIndex, data: buf}
		}(idx, start, end)
	}

	wg.Wait()
	close(results)

	collected := make([]indexedResult, 0, threadCount)
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			continue
		}
		collected = append(collected, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	slices.SortFunc(collected, func(a, b indexedResult) bool { return a.index < b.index })

	cipherBytes := make([]byte, 0, chunkCount*lit.RQBytes())
	for _, res := range collected {
		cipherBytes = append(cipherBytes, res.data...)
	}

	return Pack(cipherBytes, chunked.Cuts, chunked.Seed), nil
}

// BytesDecrypt reverses BytesEncrypt: unpack the trailer, decrypt each
// RQBytes-sized chunk across a bounded worker pool, unshuffle and cut each
// recovered chunk back to its real-content prefix, then fold the merged
// ternary stream back into bytes.
func BytesDecrypt(cipher []byte, sk *core.PrivateKey, lit params.Literal) ([]byte, error) {
	cipherBytes, cuts, seed, err := Unpack(cipher, lit.RQBytes())
	if err != nil {
		return nil, err
	}

	chunkCount := len(cuts)
	if chunkCount == 0 {
		return TernaryToBytes(nil), nil
	}

	threadCount := workerCount(chunkCount)
	perThread := (chunkCount + threadCount - 1) / threadCount

	type decoded struct {
		index int
		parts [][]int8
		err   error
	}
	results := make(chan decoded, threadCount)
	var wg sync.WaitGroup

	for start, idx := 0, 0; start < chunkCount; start, idx = start+perThread, idx+1 {
		end := start + perThread
		if end > chunkCount {
			end = chunkCount
		}
		wg.Add(1)
		go func(threadIndex, start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- decoded{index: threadIndex, err: fmt.Errorf("%w: %v", ErrWorkerJoin, r)}
				}
			}()

			parts := make([][]int8, 0, end-start)
			for i := start; i < end; i++ {
				off := i * lit.RQBytes()
				c, err := ring.RqFromBytes(lit.P, lit.Q, lit.Q12(), cipherBytes[off:off+lit.RQBytes()])
				if err != nil {
					results <- decoded{index: threadIndex, err: err}
					return
				}
				r3 := core.Decrypt(c, sk, lit.W)
				parts = append(parts, r3.Coeffs)
			}
			results <- decoded{index: threadIndex, parts: parts}
		}(idx, start, end)
	}

	wg.Wait()
	close(results)

	collected := make([]decoded, 0, threadCount)
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			continue
		}
		collected = append(collected, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	slices.SortFunc(collected, func(a, b decoded) bool { return a.index < b.index })

	allParts := make([][]int8, 0, chunkCount)
	for _, group := range collected {
		allParts = append(allParts, group.parts...)
	}

	merged, err := MergeFromChunks(allParts, cuts, seed)
	if err != nil {
		return nil, err
	}
	return TernaryToBytes(merged), nil
}
