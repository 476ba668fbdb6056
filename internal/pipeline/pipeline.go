// Package pipeline orchestrates the driver build workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/retroenv/nsfdriver/internal/assembler"
	"github.com/retroenv/nsfdriver/internal/assembler/ca65"
	"github.com/retroenv/nsfdriver/internal/chip"
	"github.com/retroenv/nsfdriver/internal/fileprocessor"
	"github.com/retroenv/nsfdriver/internal/listing"
	"github.com/retroenv/nsfdriver/internal/options"
	"github.com/retroenv/nsfdriver/internal/reloc"
	"github.com/retroenv/nsfdriver/internal/verification"
	"github.com/retroenv/nsfdriver/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline builds the driver for all selected targets and writes their headers.
type Pipeline struct {
	logger    *log.Logger
	toolchain assembler.Toolchain
}

// New creates a new driver build pipeline.
func New(logger *log.Logger, toolchain assembler.Toolchain) *Pipeline {
	return &Pipeline{
		logger:    logger,
		toolchain: toolchain,
	}
}

// Execute runs the complete build pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Build) error {
	start := time.Now()

	targets, err := chip.ParseList(opts.Chips)
	if err != nil {
		return fmt.Errorf("parsing chip list: %w", err)
	}

	configs, err := ca65.WriteLinkerConfigs(opts.WorkDir, reloc.BaseAddress, reloc.ShiftedAddress)
	if err != nil {
		return fmt.Errorf("writing linker configs: %w", err)
	}
	if !opts.Debug {
		defer func() {
			if err := fileprocessor.RemoveFiles(p.logger, configs[0].Path, configs[1].Path); err != nil {
				p.logger.Error("Removing linker configs failed", log.Err(err))
			}
		}()
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory '%s': %w", opts.OutputDir, err)
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("building drivers: %w", err)
		}
		if err := p.buildTarget(ctx, opts, target, configs); err != nil {
			return fmt.Errorf("building driver for %s: %w", target, err)
		}
	}

	p.logger.Info("All driver headers created",
		log.Int("drivers", len(targets)),
		log.String("duration", time.Since(start).Round(time.Millisecond).String()))
	return nil
}

func (p *Pipeline) buildTarget(ctx context.Context, opts options.Build, target chip.Target,
	configs []ca65.LinkerConfig) (err error) {

	p.logger.Info("Building NSF driver", log.String("chip", string(target)))

	base, shifted := configs[0], configs[1]
	listingFile := filepath.Join(opts.WorkDir, target.ListingFile())
	objectFile := filepath.Join(opts.WorkDir, fileprocessor.ObjectFile)
	baseImage := filepath.Join(opts.WorkDir, target.ImageFile(base.Name))
	shiftedImage := filepath.Join(opts.WorkDir, target.ImageFile(shifted.Name))

	if !opts.Debug {
		defer func() {
			files := fileprocessor.IntermediateFiles(opts.WorkDir, target, base.Name, shifted.Name)
			if removeErr := fileprocessor.RemoveFiles(p.logger, files...); removeErr != nil && err == nil {
				err = removeErr
			}
		}()
	}

	params := assembler.AssembleParams{
		Source:      opts.Source,
		ListingFile: listingFile,
		ObjectFile:  objectFile,
		Defines:     append([]string{target.Define()}, assembler.DriverDefines...),
	}
	if err := p.toolchain.Assemble(ctx, params); err != nil {
		return err
	}
	if err := p.toolchain.Link(ctx, objectFile, baseImage, base.Path); err != nil {
		return err
	}
	if err := p.toolchain.Link(ctx, objectFile, shiftedImage, shifted.Path); err != nil {
		return err
	}

	lst, err := parseListingFile(listingFile)
	if err != nil {
		return err
	}

	res, err := p.compareImages(baseImage, shiftedImage, lst)
	if err != nil {
		return err
	}

	header, err := writer.NewHeader(target, lst, res)
	if err != nil {
		return fmt.Errorf("creating header: %w", err)
	}

	headerFile := filepath.Join(opts.OutputDir, target.HeaderFile())
	if err := writeHeaderFile(headerFile, header); err != nil {
		return err
	}

	p.logger.Debug("Driver header written",
		log.String("file", headerFile),
		log.Int("size", len(res.Preamble)+len(res.Body)),
		log.Int("relocations", len(res.Words)),
		log.Int("pointer_pairs", len(header.Pairs)))
	return nil
}

func (p *Pipeline) compareImages(baseImage, shiftedImage string, lst *listing.Listing) (*reloc.Result, error) {
	base, err := os.ReadFile(baseImage)
	if err != nil {
		return nil, fmt.Errorf("reading linked image: %w", err)
	}
	shifted, err := os.ReadFile(shiftedImage)
	if err != nil {
		return nil, fmt.Errorf("reading linked image: %w", err)
	}

	if err := verification.CheckImagePair(p.logger, base, shifted); err != nil {
		return nil, fmt.Errorf("comparing linked images: %w", err)
	}

	res, err := reloc.Diff(base, shifted, lst)
	if err != nil {
		return nil, fmt.Errorf("comparing linked images: %w", err)
	}
	return res, nil
}

func parseListingFile(listingFile string) (*listing.Listing, error) {
	file, err := os.Open(listingFile)
	if err != nil {
		return nil, fmt.Errorf("opening listing '%s': %w", listingFile, err)
	}
	defer func() { _ = file.Close() }()

	lst, err := listing.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing listing '%s': %w", listingFile, err)
	}
	return lst, nil
}

func writeHeaderFile(headerFile string, header *writer.Header) error {
	file, err := os.Create(headerFile)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", headerFile, err)
	}

	if err := header.Write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", headerFile, err)
	}
	return nil
}
