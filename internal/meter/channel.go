package meter

import (
	"strconv"

	"github.com/specialistvlad/k2700go/internal/scpi"
)

// Channel associates one card channel with its measurement type and the
// unit its readings are reported in.
type Channel struct {
	ID   int
	Type MeasurementType
	Unit string

	// setupCommands are the type's setup commands with this channel's
	// route list appended, ready to send verbatim.
	setupCommands []string
}

func newChannel(id int, mt MeasurementType, unit string) *Channel {
	suffix := "," + scpi.ChannelList([]int{id})
	commands := make([]string, 0, len(mt.Setup))
	for _, cmd := range mt.Setup {
		commands = append(commands, cmd+suffix)
	}
	return &Channel{
		ID:            id,
		Type:          mt,
		Unit:          unit,
		setupCommands: commands,
	}
}

// String renders the channel as its route number.
func (c *Channel) String() string {
	return strconv.Itoa(c.ID)
}
