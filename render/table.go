package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phil-mansfield/peri-profiles/halo"
	"github.com/phil-mansfield/peri-profiles/profile"
)

// WriteTable writes the bin centres and percentile curves of one radius
// definition as a whitespace-separated text table. If no host was stacked
// only the header is written.
func WriteTable(
	w io.Writer, res *profile.Result, def halo.Definition, scale float64,
) error {
	bw := bufio.NewWriter(w)
	band := res.Bands[def]
	n := 0
	if band != nil {
		n = band.N
	}

	fmt.Fprintf(bw, "# Stacked subhalo number density, %s\n",
		Label(def, scale))
	fmt.Fprintf(bw, "# Hosts stacked: %d\n", n)
	fmt.Fprintf(bw, "# 0 - %s\n", Label(def, scale))
	for j, pct := range res.Percentiles {
		fmt.Fprintf(bw, "# %d - n(r)/(N_tot V), %g percentile\n", j+1, pct)
	}

	if n > 0 {
		for i, x := range res.Centers {
			fmt.Fprintf(bw, "%10.4f", x)
			for j := range band.Curves {
				fmt.Fprintf(bw, " %12.5g", band.Curves[j][i])
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}

// WriteHosts writes a summary line for every host.
func WriteHosts(w io.Writer, hosts []profile.HostSummary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Host summaries")
	fmt.Fprintln(bw, "# 0 - ID")
	fmt.Fprintln(bw, "# 1 - Subhaloes")
	fmt.Fprintln(bw, "# 2 - Rejected subhaloes")
	fmt.Fprintln(bw, "# 3 - Qualifying subhaloes")
	fmt.Fprintln(bw, "# 4 - Stacked (0 or 1)")
	fmt.Fprintln(bw, "# 5 - M200c (Msun/h)")
	fmt.Fprintln(bw, "# 6 - Gamma")
	fmt.Fprintln(bw, "# 7 - R_sp/R_200m")
	fmt.Fprintln(bw, "# 8 - R_min/R_200m")
	fmt.Fprintln(bw, "# 9 - R_max/R_200m")

	for i := range hosts {
		h := &hosts[i]
		stacked := 0
		if h.Stacked {
			stacked = 1
		}
		fmt.Fprintf(bw, "%10d %6d %6d %6d %d %12.4g %8.4f %8.4f %8.4f %8.4f\n",
			h.ID, h.Subs, h.Rejected, h.Qualifying, stacked, h.M200c, h.Gamma,
			h.RSpOverR200m, h.RMinOverR200m, h.RMaxOverR200m)
	}

	return bw.Flush()
}

// Tables writes profile_<key>.txt for every radius definition and hosts.txt
// to dir and returns the names of the files written.
func Tables(
	res *profile.Result, scales map[halo.Definition]float64, dir string,
) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, f func(w io.Writer) error) error {
		fname := filepath.Join(dir, name)
		out, err := os.Create(fname)
		if err != nil {
			return err
		}
		if err := f(out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		written = append(written, fname)
		return nil
	}

	for _, def := range halo.Definitions {
		scale := scaleOf(scales, def)
		err := write(fmt.Sprintf("profile_%s.txt", def.Key()),
			func(w io.Writer) error { return WriteTable(w, res, def, scale) })
		if err != nil {
			return written, err
		}
	}

	err := write("hosts.txt",
		func(w io.Writer) error { return WriteHosts(w, res.Hosts) })
	return written, err
}
