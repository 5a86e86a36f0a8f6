package spiral

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the epoch used for the exports when none is configured.
var J2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	OutputDir string
	CSV       bool   // x,y (km) file for the plotting tools
	Time      bool   // prepend the elapsed time (s) to each CSV row
	Cosmo     bool   // Cosmographia interpolated states and catalog
	Every     uint64 // only write one sample out of Every (the last one is always written)
	Timestamp bool   // stamp the file names with the creation date
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Cosmo && !c.CSV
}

func (c ExportConfig) path(prefix, ext string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	name := c.Filename
	if name == "" {
		name = "trajectory"
	}
	if prefix != "" {
		name = prefix + "-" + name
	}
	if c.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(dir, name+"."+ext)
}

// CSVHeader returns the header row of the CSV export.
func CSVHeader(withTime bool) []string {
	if withTime {
		return []string{"t", "x", "y"}
	}
	return []string{"x", "y"}
}

// CSVRecord returns the CSV row of a sample, positions in km.
func CSVRecord(s Sample, withTime bool) []string {
	x := strconv.FormatFloat(s.R.X, 'f', 6, 64)
	y := strconv.FormatFloat(s.R.Y, 'f', 6, 64)
	if withTime {
		return []string{strconv.FormatFloat(s.T, 'f', 3, 64), x, y}
	}
	return []string{x, y}
}

// WriteCSV writes the header and one row per sample.
func WriteCSV(w io.Writer, samples []Sample, withTime bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(withTime)); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write(CSVRecord(s, withTime)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are currently supported in Cosmographia trajectory types")
	}
	return nil
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState definition.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// NewCgInterpolatedState returns the interpolated state of a planar sample.
func NewCgInterpolatedState(s Sample, epoch time.Time) CgInterpolatedState {
	dt := epoch.Add(time.Duration(s.T * float64(time.Second)))
	return CgInterpolatedState{julian.TimeToJD(dt), []float64{s.R.X, s.R.Y, 0}, []float64{s.V.X, s.V.Y, 0}}
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// sampleWriter writes the samples of one export format.
type sampleWriter interface {
	write(s Sample) error
	close(last Sample) error
}

type csvSampleWriter struct {
	f        *os.File
	w        *csv.Writer
	withTime bool
}

func newCSVSampleWriter(conf ExportConfig) (*csvSampleWriter, error) {
	f, err := os.Create(conf.path("", "csv"))
	if err != nil {
		return nil, err
	}
	w := &csvSampleWriter{f, csv.NewWriter(f), conf.Time}
	if err := w.w.Write(CSVHeader(conf.Time)); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *csvSampleWriter) write(s Sample) error {
	return w.w.Write(CSVRecord(s, w.withTime))
}

func (w *csvSampleWriter) close(last Sample) error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

type cosmoSampleWriter struct {
	f      *os.File
	conf   ExportConfig
	body   CelestialObject
	epoch  time.Time
	source string
}

func newCosmoSampleWriter(conf ExportConfig, body CelestialObject, epoch time.Time) (*cosmoSampleWriter, error) {
	path := conf.path("prop", "xyzv")
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	// Header
	if _, err := f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now().UTC(), epoch.UTC())); err != nil {
		f.Close()
		return nil, err
	}
	return &cosmoSampleWriter{f, conf, body, epoch, filepath.Base(path)}, nil
}

func (w *cosmoSampleWriter) write(s Sample) error {
	asTxt := NewCgInterpolatedState(s, w.epoch)
	_, err := w.f.WriteString("\n" + asTxt.ToText())
	return err
}

func (w *cosmoSampleWriter) close(last Sample) error {
	end := w.epoch.Add(time.Duration(last.T * float64(time.Second)))
	if _, err := w.f.WriteString(fmt.Sprintf("\n# Simulation time end (UTC): %s\n", end.UTC())); err != nil {
		w.f.Close()
		return err
	}
	if err := w.f.Close(); err != nil {
		return err
	}
	// Let's write the catalog.
	color := []float64{0.6, 1, 1}
	longerEnd := end.Add(24 * time.Hour)
	item := &CgItems{
		Class:      "spacecraft",
		Name:       w.conf.Filename,
		StartTime:  w.epoch.UTC().String(),
		EndTime:    longerEnd.UTC().String(),
		Center:     w.body.Name,
		Trajectory: &CgTrajectory{Type: "InterpolatedStates", Source: w.source},
		Label:      &CgLabel{Color: color, FadeSize: 1000000, ShowText: true},
		TrajectoryPlot: &CgTrajectoryPlot{Color: color, LineWidth: 1, Lead: "0 d", SampleCount: 10,
			Duration: fmt.Sprintf("%d d", int(longerEnd.Sub(w.epoch).Hours()/24+1))},
	}
	if w.body.Name == Sun.Name {
		item.TrajectoryFrame = "EclipticJ2000"
	} else {
		item.TrajectoryFrame = "ICRF"
	}
	if err := item.Trajectory.Validate(); err != nil {
		return err
	}
	c := CgCatalog{Version: "1.0", Name: w.conf.Filename, Items: []*CgItems{item}}
	marsh, err := json.Marshal(c)
	if err != nil {
		return err
	}
	fc, err := os.Create(w.conf.path("catalog", "json"))
	if err != nil {
		return err
	}
	if _, err := fc.Write(marsh); err != nil {
		fc.Close()
		return err
	}
	return fc.Close()
}

// StreamSamples streams the output of the channel to the configured files until the channel is closed.
// The channel is always drained, even on error, so that the propagation never blocks on a failed export.
func StreamSamples(conf ExportConfig, body CelestialObject, epoch time.Time, samples <-chan (Sample)) (err error) {
	defer func() {
		for range samples {
		}
	}()
	if epoch.IsZero() {
		epoch = J2000
	}
	var writers []sampleWriter
	if conf.CSV {
		w, cerr := newCSVSampleWriter(conf)
		if cerr != nil {
			return cerr
		}
		writers = append(writers, w)
	}
	if conf.Cosmo {
		w, cerr := newCosmoSampleWriter(conf, body, epoch)
		if cerr != nil {
			for _, prev := range writers {
				prev.close(Sample{})
			}
			return cerr
		}
		writers = append(writers, w)
	}
	every := conf.Every
	if every == 0 {
		every = 1
	}

	var idx uint64
	var last Sample
	pending := false
	for s := range samples {
		last = s
		pending = idx%every != 0
		if !pending {
			for _, w := range writers {
				if err = w.write(s); err != nil {
					break
				}
			}
		}
		idx++
		if err != nil {
			break
		}
	}
	for _, w := range writers {
		if err == nil && pending {
			err = w.write(last)
		}
		if cerr := w.close(last); err == nil {
			err = cerr
		}
	}
	return err
}
