package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/nodeindex"
	"github.com/osmium-go/osmcore/internal/opl"
	"github.com/osmium-go/osmcore/internal/pbf"
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Build a Location Index from a PBF or OPL file's nodes and report how many were indexed",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		cfg.InputFile = args[0]
		if err := cfg.Validate(); err != nil {
			exitWithError("invalid configuration", err)
		}
		if err := runIndex(); err != nil {
			exitWithError("index build failed", err)
		}
	},
}

func init() {
	indexCmd.Flags().StringVar(&cfg.MapType, "map-type", cfg.MapType, "Location Index backend name")
	indexCmd.Flags().StringVar(&cfg.MapDir, "map-dir", cfg.MapDir, "Backing directory for file/mmap-based backends")
	rootCmd.AddCommand(indexCmd)
}

func runIndex() error {
	idx, err := nodeindex.Create(cfg.MapType, cfg.MapDir)
	if err != nil {
		return fmt.Errorf("creating %q index: %w", cfg.MapType, err)
	}
	if c, ok := idx.(nodeindex.Closer); ok {
		defer c.Close()
	}

	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	var count int64
	set := func(id int64, lon, lat float64) error {
		loc, err := location.FromLonLat(lon, lat)
		if err != nil {
			return err
		}
		idx.Set(id, loc)
		count++
		return nil
	}

	switch cfg.ResolvedFormat() {
	case "opl":
		err = indexFromOPL(f, set)
	default:
		err = indexFromPBF(f, set)
	}
	if err != nil {
		return err
	}

	fmt.Printf("map_type=%s nodes_indexed=%d\n", cfg.MapType, count)
	return nil
}

func indexFromOPL(f *os.File, set func(id int64, lon, lat float64) error) error {
	buf := entity.NewBuffer(0)
	p := opl.NewParser()
	if err := p.ParseAll(f, buf); err != nil {
		return err
	}
	for _, e := range buf.Entities() {
		if n, ok := e.(*entity.Node); ok {
			if err := set(n.ID, n.Lon, n.Lat); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexFromPBF(f *os.File, set func(id int64, lon, lat float64) error) error {
	d := pbf.NewDecoder(f, pbf.DefaultOptions())
	defer d.Close()
	if _, err := d.Header(); err != nil {
		return err
	}
	for {
		buf, err := d.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for _, e := range buf.Entities() {
			if n, ok := e.(*entity.Node); ok {
				if err := set(n.ID, n.Lon, n.Lat); err != nil {
					return err
				}
			}
		}
	}
}
