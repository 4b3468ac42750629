package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/header"
	"github.com/osmium-go/osmcore/internal/logger"
	"github.com/osmium-go/osmcore/internal/opl"
	"github.com/osmium-go/osmcore/internal/pbf"
)

var syncDecode bool

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a PBF or OPL file and report entity counts",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		cfg.InputFile = args[0]
		if v := os.Getenv("OSMCORE_PBF_SYNC"); v == "1" {
			syncDecode = true
		}
		if err := cfg.Validate(); err != nil {
			exitWithError("invalid configuration", err)
		}
		if err := runDecode(); err != nil {
			exitWithError("decode failed", err)
		}
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&syncDecode, "sync", false, "Decode PBF blobs synchronously instead of using the worker pool")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode() error {
	log := logger.Get()

	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	switch cfg.ResolvedFormat() {
	case "opl":
		return decodeOPL(f)
	default:
		return decodePBF(f, log)
	}
}

func decodeOPL(r io.Reader) error {
	buf := entity.NewBuffer(0)
	p := opl.NewParser()
	if err := p.ParseAll(r, buf); err != nil {
		return err
	}
	reportCounts(buf)
	return nil
}

func decodePBF(r io.Reader, log *zap.Logger) error {
	opts := pbf.DefaultOptions()
	opts.Workers = cfg.Workers
	opts.QueueCapacity = cfg.QueueCapacity
	opts.Synchronous = syncDecode

	d := pbf.NewDecoder(r, opts)
	defer d.Close()

	h, err := d.Header()
	if err != nil {
		return err
	}
	reportHeader(h)

	var entitiesSeen atomic.Int64
	tickCtx, stopTicker := context.WithCancel(context.Background())
	defer stopTicker()
	go pbf.NewProgressTicker(tickCtx, func() {
		log.Info("decoding", zap.Int64("entities", entitiesSeen.Load()))
	}).Run()

	var nodes, ways, relations, changesets int64
	for {
		buf, err := d.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for _, e := range buf.Entities() {
			switch e.Kind() {
			case entity.NodeKind:
				nodes++
			case entity.WayKind:
				ways++
			case entity.RelationKind:
				relations++
			case entity.ChangesetKind:
				changesets++
			}
		}
		entitiesSeen.Add(int64(buf.Len()))
	}

	fmt.Printf("nodes=%d ways=%d relations=%d changesets=%d\n", nodes, ways, relations, changesets)
	return nil
}

func reportHeader(h header.Header) {
	fmt.Printf("writing_program=%q source=%q bbox_set=%v required_features=%v\n",
		h.WritingProgram, h.Source, h.BBox.Set, h.RequiredFeatures)
}

func reportCounts(buf *entity.Buffer) {
	var nodes, ways, relations, changesets int64
	for _, e := range buf.Entities() {
		switch e.Kind() {
		case entity.NodeKind:
			nodes++
		case entity.WayKind:
			ways++
		case entity.RelationKind:
			relations++
		case entity.ChangesetKind:
			changesets++
		}
	}
	fmt.Printf("nodes=%d ways=%d relations=%d changesets=%d\n", nodes, ways, relations, changesets)
}
