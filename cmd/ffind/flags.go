package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/query"
)

var (
	_ pflag.Value = (*sizeFlag)(nil)
	_ pflag.Value = (*ageFlag)(nil)
	_ pflag.Value = (*typeFlag)(nil)
)

// sizeFlag is a pflag.Value parsing find-style size expressions.
type sizeFlag struct {
	expr filter.SizeExpr
}

func (f *sizeFlag) String() string { return f.expr.String() }
func (*sizeFlag) Type() string     { return "size" }

func (f *sizeFlag) Set(val string) error {
	e, err := filter.ParseSizeExpr(val)
	if err != nil {
		return err
	}
	f.expr = e
	return nil
}

// ageFlag is a pflag.Value parsing find-style -mtime day counts.
type ageFlag struct {
	expr filter.AgeExpr
}

func (f *ageFlag) String() string { return f.expr.String() }
func (*ageFlag) Type() string     { return "days" }

func (f *ageFlag) Set(val string) error {
	e, err := filter.ParseAgeExpr(val)
	if err != nil {
		return err
	}
	f.expr = e
	return nil
}

// typeFlag accepts "f" or "d".
type typeFlag struct {
	filter query.TypeFilter
}

func (f *typeFlag) String() string {
	switch f.filter {
	case query.TypeFile:
		return "f"
	case query.TypeDir:
		return "d"
	default:
		return ""
	}
}

func (*typeFlag) Type() string { return "f|d" }

func (f *typeFlag) Set(val string) error {
	switch val {
	case "f", "file":
		f.filter = query.TypeFile
	case "d", "dir":
		f.filter = query.TypeDir
	default:
		return fmt.Errorf("type must be f or d, got %q", val)
	}
	return nil
}
