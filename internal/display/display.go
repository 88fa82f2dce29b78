// Package display drives a 128x64 SSD1306 OLED over I2C.
//
// Every bus write is one frame: a control byte (0x00 for a command stream,
// 0x40 for pixel data) followed by the payload. The panel is used in
// horizontal addressing mode and text is drawn into fixed bands, so each
// draw fully overwrites whatever the band showed before.
package display

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// Driver is what the alarm clock needs from a display.
type Driver interface {
	Init() error
	Clear() error
	WriteTime(hour, minute, second uint8) error
	WriteAlarm(hour, minute uint8) error
	Off() error
}

// Address is the 7-bit I2C address of the panel.
const Address = 0x3C

// Panel geometry.
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8
)

const (
	ctrlCommand byte = 0x00
	ctrlData    byte = 0x40

	// maxPayload bounds the pixel bytes sent per frame.
	maxPayload = 16
)

// SSD1306 commands.
const (
	cmdDisplayOff     = 0xAE
	cmdDisplayOn      = 0xAF
	cmdColumnRange    = 0x21
	cmdPageRange      = 0x22
	cmdEntireOnResume = 0xA4
	cmdNormalDisplay  = 0xA6
)

// initSequence mirrors the vendor power-up sequence for a 128x64 panel
// with the internal charge pump.
var initSequence = []byte{
	cmdDisplayOff,
	0xD5, 0x80, // clock divide ratio
	0xA8, 0x3F, // multiplex 64
	0xD3, 0x00, // display offset
	0x40,       // start line 0
	0x8D, 0x14, // charge pump on
	0x20, 0x00, // horizontal addressing
	0xA1,       // segment remap
	0xC8,       // COM scan descending
	0xDA, 0x12, // COM pins
	0x81, 0xCF, // contrast
	0xD9, 0xF1, // pre-charge
	0xDB, 0x40, // VCOMH
	cmdEntireOnResume,
	cmdNormalDisplay,
	cmdDisplayOn,
}

// Text bands, in pages.
const (
	timePage  = 1
	alarmPage = 5
)

// SSD1306 is a panel on an I2C bus.
type SSD1306 struct {
	bus  drivers.I2C
	addr uint16
	buf  [1 + maxPayload]byte
}

// New creates a driver for the panel at Address on bus.
// It does not touch the device.
func New(bus drivers.I2C) *SSD1306 {
	return &SSD1306{bus: bus, addr: Address}
}

// Init sends the power-up sequence and turns the panel on.
func (d *SSD1306) Init() error {
	if err := d.command(initSequence...); err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	return nil
}

// Clear blanks the whole panel.
func (d *SSD1306) Clear() error {
	if err := d.fill(0, Pages-1, make([]byte, Width*Pages)); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	return nil
}

// WriteTime draws HH:MM:SS in the time band.
func (d *SSD1306) WriteTime(hour, minute, second uint8) error {
	band := renderBand(fmt.Sprintf("%02d:%02d:%02d", hour, minute, second))
	if err := d.fill(timePage, timePage+bandPages-1, band); err != nil {
		return fmt.Errorf("write time: %w", err)
	}
	return nil
}

// WriteAlarm draws the configured alarm time in the alarm band.
func (d *SSD1306) WriteAlarm(hour, minute uint8) error {
	band := renderBand(fmt.Sprintf("ALARM %02d:%02d", hour, minute))
	if err := d.fill(alarmPage, alarmPage+bandPages-1, band); err != nil {
		return fmt.Errorf("write alarm: %w", err)
	}
	return nil
}

// Off turns the panel off. Display RAM is kept until power is cut.
func (d *SSD1306) Off() error {
	if err := d.command(cmdDisplayOff); err != nil {
		return fmt.Errorf("display off: %w", err)
	}
	return nil
}

// fill selects pages first..last across the full width and streams pix.
func (d *SSD1306) fill(first, last byte, pix []byte) error {
	if err := d.command(cmdColumnRange, 0, Width-1, cmdPageRange, first, last); err != nil {
		return err
	}
	return d.data(pix)
}

func (d *SSD1306) command(cmds ...byte) error {
	frame := make([]byte, 0, 1+len(cmds))
	frame = append(frame, ctrlCommand)
	frame = append(frame, cmds...)
	return d.bus.Tx(d.addr, frame, nil)
}

func (d *SSD1306) data(pix []byte) error {
	for len(pix) > 0 {
		n := min(len(pix), maxPayload)
		d.buf[0] = ctrlData
		copy(d.buf[1:], pix[:n])
		if err := d.bus.Tx(d.addr, d.buf[:1+n], nil); err != nil {
			return err
		}
		pix = pix[n:]
	}
	return nil
}
