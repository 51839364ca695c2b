package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/creachadair/specjson"
	"github.com/panjf2000/ants/v2"
	"github.com/tailscale/hujson"
	"golang.org/x/time/rate"
)

// A Result records the outcome of parsing one input file.
type Result struct {
	File     string
	Bytes    int64 // input bytes consumed by the parser
	Values   int   // complete sample records
	Elements int   // array elements in all records
	Elapsed  time.Duration
	Err      error
}

// Run parses each of the files named by cfg as a stream of sample records,
// using up to cfg.Workers goroutines. Errors in individual files are
// reported in their results; Run itself fails only if the work cannot be
// scheduled.
func Run(ctx context.Context, cfg Config, log *slog.Logger) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	results := make([]Result, len(cfg.Files))
	var wg sync.WaitGroup
	for i, path := range cfg.Files {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = parseFile(ctx, cfg, path, log)
		})
		if err != nil {
			wg.Done()
			results[i] = Result{File: path, Err: fmt.Errorf("schedule: %w", err)}
		}
	}
	wg.Wait()

	return &Summary{
		Results: results,
		Elapsed: time.Since(start),
		RSS:     residentMemory(),
	}, nil
}

func parseFile(ctx context.Context, cfg Config, path string, log *slog.Logger) (res Result) {
	res.File = path
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	f, err := os.Open(path)
	if err != nil {
		res.Err = err
		return
	}
	defer f.Close()

	var r io.Reader = f
	if cfg.HuJSON {
		data, err := io.ReadAll(f)
		if err != nil {
			res.Err = fmt.Errorf("read input: %w", err)
			return
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			res.Err = fmt.Errorf("standardize input: %w", err)
			return
		}
		r = bytes.NewReader(std)
	}
	if cfg.Rate > 0 {
		r = newPacedReader(ctx, r, cfg.Rate, cfg.BlockSize)
	}
	if cfg.Prefetch > 0 {
		pctx, cancel := context.WithCancel(ctx)
		defer cancel()
		r = newPrefetchReader(pctx, r, cfg.BlockSize, cfg.Prefetch)
	}

	s := specjson.NewStreamSize(r, cfg.BlockSize)
	count := func(recs ...Sample) error {
		for i := range recs {
			res.Values++
			res.Elements += recs[i].Elements()
		}
		return ctx.Err()
	}
	if cfg.HuJSON {
		// A HuJSON document has a single top-level value, an array of records.
		arr := specjson.NewContainerArray(NewSampleParser())
		var recs []Sample
		res.Err = s.Parse(arr, func() error {
			if err := arr.Swap(&recs); err != nil {
				return err
			}
			return count(recs...)
		})
	} else {
		obj := NewSampleParser()
		var rec Sample
		res.Err = s.Parse(obj, func() error {
			if err := obj.Swap(&rec); err != nil {
				return err
			}
			return count(rec)
		})
	}
	res.Bytes = s.Offset()
	log.Debug("parsed file", "file", path, "bytes", res.Bytes, "values", res.Values,
		"elapsed", time.Since(start), "err", res.Err)
	return
}

// pacedReader limits the rate at which bytes are read from r.
type pacedReader struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

func newPacedReader(ctx context.Context, r io.Reader, bytesPerSec float64, burst int) *pacedReader {
	return &pacedReader{ctx: ctx, r: r, lim: rate.NewLimiter(rate.Limit(bytesPerSec), burst)}
}

func (p *pacedReader) Read(buf []byte) (int, error) {
	// A single wait may not exceed the burst size.
	if len(buf) > p.lim.Burst() {
		buf = buf[:p.lim.Burst()]
	}
	n, err := p.r.Read(buf)
	if n > 0 {
		if werr := p.lim.WaitN(p.ctx, n); werr != nil {
			return 0, werr
		}
	}
	return n, err
}

// prefetchReader reads blocks from an underlying reader in a separate
// goroutine, up to a fixed number of blocks ahead of its consumer.
type prefetchReader struct {
	blocks <-chan block
	free   chan []byte
	cur    []byte // unread part of the current block
	buf    []byte // the whole current block, for recycling
	err    error
}

type block struct {
	data []byte
	err  error
}

func newPrefetchReader(ctx context.Context, r io.Reader, size, depth int) *prefetchReader {
	blocks := make(chan block, depth)
	free := make(chan []byte, depth+1)
	go func() {
		defer close(blocks)
		for {
			var buf []byte
			select {
			case buf = <-free:
			default:
				buf = make([]byte, size)
			}
			n, err := r.Read(buf)
			if n == 0 && err == nil {
				continue
			}
			select {
			case blocks <- block{data: buf[:n], err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return &prefetchReader{blocks: blocks, free: free}
}

func (p *prefetchReader) Read(buf []byte) (int, error) {
	for len(p.cur) == 0 {
		if p.err != nil {
			return 0, p.err
		}
		if p.buf != nil {
			select {
			case p.free <- p.buf[:cap(p.buf)]:
			default:
			}
			p.buf = nil
		}
		b, ok := <-p.blocks
		if !ok {
			p.err = io.ErrUnexpectedEOF
			continue
		}
		p.cur, p.buf, p.err = b.data, b.data, b.err
	}
	n := copy(buf, p.cur)
	p.cur = p.cur[n:]
	return n, nil
}
