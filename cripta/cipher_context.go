package cripta

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// CipherContext encrypts whole messages block by block under one key. Blocks
// are independent of each other; there is no chaining.
type CipherContext struct {
	cipher  ISymmetricCipher
	padding IPadding
	workers int
	log     logrus.FieldLogger
}

type ContextOption func(*CipherContext)

// WithWorkers sets how many goroutines transform blocks. Values below 1 mean
// one per CPU.
func WithWorkers(n int) ContextOption {
	return func(ctx *CipherContext) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		ctx.workers = n
	}
}

func WithLogger(l logrus.FieldLogger) ContextOption {
	return func(ctx *CipherContext) {
		if l != nil {
			ctx.log = l
		}
	}
}

// keyedCipher is implemented by ciphers that can report whether a key is set.
type keyedCipher interface {
	RoundKeys() (RoundKeys, bool)
}

// NewCipherContext binds cipher to key. A nil key means the cipher was keyed
// beforehand. Key errors are reported here, before any block is processed.
func NewCipherContext(
	cipher ISymmetricCipher,
	key Bits,
	padding IPadding,
	opts ...ContextOption,
) (*CipherContext, error) {

	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}
	if padding == nil {
		return nil, fmt.Errorf("padding implementation cannot be nil")
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	ctx := &CipherContext{
		cipher:  cipher,
		padding: padding,
		workers: 1,
		log:     discard,
	}
	for _, opt := range opts {
		opt(ctx)
	}

	if key != nil {
		if err := ctx.cipher.SetKey(key); err != nil {
			return nil, fmt.Errorf("failed to set key: %w", err)
		}
		ctx.log.Debug("key schedule derived")
	} else if kc, ok := cipher.(keyedCipher); ok {
		if _, keyed := kc.RoundKeys(); !keyed {
			return nil, fmt.Errorf("%w: cipher has no key", ErrInvalidKey)
		}
	}

	return ctx, nil
}

// EncryptBits pads plaintext to whole blocks and enciphers each block.
func (ctx *CipherContext) EncryptBits(plaintext Bits) (Bits, error) {
	padded, err := ctx.padding.Pad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("padding failed: %w", err)
	}

	blocks, err := padded.Chunks(BlockBits)
	if err != nil {
		return nil, fmt.Errorf("splitting padded message: %w", err)
	}

	out, err := ctx.transform(blocks, ctx.cipher.EncryptBlock)
	if err != nil {
		return nil, err
	}
	ctx.log.WithFields(logrus.Fields{"blocks": len(blocks), "workers": ctx.workers}).Debug("message encrypted")
	return Concat(out...), nil
}

// DecryptBits deciphers every block and strips the padding.
func (ctx *CipherContext) DecryptBits(ciphertext Bits) (Bits, error) {
	blocks, err := ciphertext.Chunks(BlockBits)
	if err != nil {
		return nil, fmt.Errorf("splitting ciphertext: %w", err)
	}

	out, err := ctx.transform(blocks, ctx.cipher.DecryptBlock)
	if err != nil {
		return nil, err
	}
	ctx.log.WithFields(logrus.Fields{"blocks": len(blocks), "workers": ctx.workers}).Debug("message decrypted")

	plain, err := ctx.padding.Unpad(Concat(out...))
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}
	return plain, nil
}

func (ctx *CipherContext) Encrypt(data []uint8) ([]uint8, error) {
	out, err := ctx.EncryptBits(BitsFromBytes(data))
	if err != nil {
		return nil, err
	}
	return out.Bytes()
}

func (ctx *CipherContext) Decrypt(data []uint8) ([]uint8, error) {
	out, err := ctx.DecryptBits(BitsFromBytes(data))
	if err != nil {
		return nil, err
	}
	return out.Bytes()
}

// transform applies fn to every block. On failure the error of the lowest
// failing block is returned and no output is produced.
func (ctx *CipherContext) transform(blocks []Bits, fn func(Bits) (Bits, error)) ([]Bits, error) {
	out := make([]Bits, len(blocks))

	if ctx.workers <= 1 || len(blocks) < 2 {
		for i, block := range blocks {
			res, err := fn(block)
			if err != nil {
				return nil, &BlockError{Index: i, Err: err}
			}
			out[i] = res
		}
		return out, nil
	}

	numThreads := ctx.workers
	if numThreads > len(blocks) {
		numThreads = len(blocks)
	}
	blocksPerThread := (len(blocks) + numThreads - 1) / numThreads

	var wg sync.WaitGroup
	errs := make(chan *BlockError, numThreads)

	for t := 0; t < numThreads; t++ {
		startBlock := t * blocksPerThread
		endBlock := startBlock + blocksPerThread
		if endBlock > len(blocks) {
			endBlock = len(blocks)
		}
		if startBlock >= len(blocks) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				res, err := fn(blocks[i])
				if err != nil {
					errs <- &BlockError{Index: i, Err: err}
					return
				}
				out[i] = res
			}
		}(startBlock, endBlock)
	}

	wg.Wait()
	close(errs)

	var first *BlockError
	for be := range errs {
		if first == nil || be.Index < first.Index {
			first = be
		}
	}
	if first != nil {
		return nil, first
	}
	return out, nil
}

// IsKeyError reports whether err was caused by bad key material.
func IsKeyError(err error) bool {
	return errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrKeyTooLong)
}
