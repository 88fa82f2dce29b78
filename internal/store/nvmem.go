package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// slotSize is the width of one register in NVRAM.
const slotSize = 4

// DefaultNVMemPath is the nvmem node exported by the DS1307/DS3231 family driver.
const DefaultNVMemPath = "/sys/bus/nvmem/devices/ds1307_nvram0/nvmem"

// NVMem stores registers in the battery-backed RAM of the RTC chip,
// exposed by the kernel nvmem subsystem. Registers are little-endian
// uint32 values starting at Offset.
type NVMem struct {
	f      *os.File
	offset int64
}

// OpenNVMem opens the nvmem node at path. Slots start at byte offset.
func OpenNVMem(path string, offset int64) (*NVMem, error) {
	if offset < 0 {
		return nil, fmt.Errorf("nvmem offset %d: must not be negative", offset)
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open nvmem: %w", err)
	}
	return &NVMem{f: f, offset: offset}, nil
}

// Read returns the value of slot.
func (n *NVMem) Read(_ context.Context, slot Slot) (uint32, error) {
	if err := checkSlot(slot); err != nil {
		return 0, err
	}
	var buf [slotSize]byte
	if _, err := n.f.ReadAt(buf[:], n.addr(slot)); err != nil {
		return 0, fmt.Errorf("read %s: %w", slot, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Write stores value in slot using a single positioned write.
func (n *NVMem) Write(_ context.Context, slot Slot, value uint32) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	var buf [slotSize]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	if _, err := n.f.WriteAt(buf[:], n.addr(slot)); err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}

// Close releases the nvmem node.
func (n *NVMem) Close() error {
	return n.f.Close()
}

func (n *NVMem) addr(slot Slot) int64 {
	return n.offset + int64(slot)*slotSize
}
