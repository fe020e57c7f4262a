package simulator

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
)

// DefaultIdentity is the *IDN? response unless a test overrides it.
const DefaultIdentity = "KEITHLEY INSTRUMENTS INC.,MODEL 2700,1234567,B09"

// Instrument is a scriptable in-memory Keithley 2700.
type Instrument struct {
	mu sync.Mutex

	identity  string
	values    map[int]float64
	clock     float64
	clockStep float64

	scanChannels []int
	sampleCount  int
	tempUnits    string
	displayText  string
	displayOn    bool
	readings     int

	commands []string
}

// Option configures a new Instrument.
type Option func(*Instrument)

// WithIdentity overrides the *IDN? response.
func WithIdentity(identity string) Option {
	return func(s *Instrument) { s.identity = identity }
}

// WithChannelValue fixes the reading reported for a channel.
func WithChannelValue(channel int, value float64) Option {
	return func(s *Instrument) { s.values[channel] = value }
}

// WithClockStep sets how far the instrument clock advances per scan.
func WithClockStep(step float64) Option {
	return func(s *Instrument) { s.clockStep = step }
}

// New creates a simulated instrument.
func New(opts ...Option) *Instrument {
	s := &Instrument{
		identity:  DefaultIdentity,
		values:    make(map[int]float64),
		clockStep: 1.0,
		tempUnits: "C",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect returns the operator's end of a fresh in-memory connection and
// starts serving the instrument's end.
func (s *Instrument) Connect() io.ReadWriteCloser {
	client, server := net.Pipe()
	go s.serve(server)
	return client
}

// Commands returns every command line received so far, in order.
func (s *Instrument) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// DisplayText returns the current front-panel text and whether text mode
// is on.
func (s *Instrument) DisplayText() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayText, s.displayOn
}

// ScanChannels returns the routed scan list.
func (s *Instrument) ScanChannels() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.scanChannels...)
}

// TemperatureUnits returns the active temperature unit.
func (s *Instrument) TemperatureUnits() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tempUnits
}

func (s *Instrument) serve(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		if response := s.handle(cmd); response != "" {
			if _, err := conn.Write([]byte(response + "\n")); err != nil {
				return
			}
		}
	}
}

// handle executes one command line and returns the response for queries.
func (s *Instrument) handle(cmd string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)

	switch {
	case cmd == "*IDN?":
		return s.identity
	case cmd == "READ?":
		return s.readResponse()
	case cmd == "*RST":
		s.scanChannels = nil
		s.sampleCount = 0
		s.clock = 0
		s.readings = 0
	case strings.HasPrefix(cmd, "ROUT:SCAN ("):
		s.scanChannels = parseChannelList(strings.TrimPrefix(cmd, "ROUT:SCAN "))
	case strings.HasPrefix(cmd, "SAMP:COUN "):
		if n, err := strconv.Atoi(strings.TrimPrefix(cmd, "SAMP:COUN ")); err == nil {
			s.sampleCount = n
		}
	case strings.HasPrefix(cmd, "UNIT:TEMP "):
		s.tempUnits = strings.TrimPrefix(cmd, "UNIT:TEMP ")
	case strings.HasPrefix(cmd, "DISP:TEXT:DATA '"):
		s.displayText = strings.TrimSuffix(strings.TrimPrefix(cmd, "DISP:TEXT:DATA '"), "'")
	case cmd == "DISP:TEXT:STAT ON":
		s.displayOn = true
	case cmd == "DISP:TEXT:STAT OFF":
		s.displayOn = false
	}
	return ""
}

// readResponse synthesizes the flat value/time/count triple list the 2700
// returns for one scan pass. Called with the mutex held.
func (s *Instrument) readResponse() string {
	fields := make([]string, 0, 3*len(s.scanChannels))
	for _, ch := range s.scanChannels {
		s.readings++
		value := s.values[ch]
		fields = append(fields,
			fmt.Sprintf("%+.8E", value),
			fmt.Sprintf("%+.8ESECS", s.clock),
			fmt.Sprintf("+%05dRDNG#", s.readings),
		)
	}
	s.clock += s.clockStep
	return strings.Join(fields, ",")
}

// parseChannelList decodes the route syntax "(@101,102)".
func parseChannelList(list string) []int {
	list = strings.TrimSuffix(strings.TrimPrefix(list, "(@"), ")")
	if list == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(list, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
