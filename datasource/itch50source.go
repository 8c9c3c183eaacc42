package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func init() {
	Register("nasdaq_itch50", NewItch50HistDataSource)
}

// RootPath is where historical feed files live, named
// RootPath/nasdaq_itch.YYYYMMDD.dat. Set it once before constructing
// any source.
var RootPath = "."

const unmapChunkSize = 1 << 22 // 4 MiB, must match munmap granularity below

// Itch50HistDataSource replays an mmap-backed NASDAQ ITCH 5.0 file in
// file order, unmapping pages behind the read cursor in 4 MiB chunks so
// a full trading day's file never needs to stay resident in the page
// cache all at once.
type Itch50HistDataSource struct {
	midnight time.Time
	endTime  time.Time

	data           []byte // the original full mapping, for final Munmap
	totalSize      int
	currentOffset  int
	unmappedSize   int
	nextMsgSize    int
	nextTimeField  time.Time
}

// NewItch50HistDataSource mmaps RootPath/nasdaq_itch.<date>.dat (date
// as YYYYMMDD) and positions the source at its first frame.
func NewItch50HistDataSource(date int) (HistDataSource, error) {
	midnight, err := midnightNYTime(date)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(RootPath, fmt.Sprintf("nasdaq_itch.%d.dat", date))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("datasource: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("datasource: stat %s: %w", path, err)
	}
	size := int(info.Size())

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("datasource: mmap %s: %w", path, err)
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	s := &Itch50HistDataSource{
		midnight:  midnight,
		endTime:   MaxTime,
		data:      data,
		totalSize: size,
	}
	s.Advance()
	return s, nil
}

// midnightNYTime computes midnight of the given YYYYMMDD date in
// America/New_York, via proper zoneinfo rather than mutating the
// process-wide TZ environment variable (which would race any other
// goroutine touching local time).
func midnightNYTime(date int) (time.Time, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.Time{}, fmt.Errorf("datasource: loading America/New_York zoneinfo: %w", err)
	}
	year := date / 10000
	month := date / 100 % 100
	day := date % 100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func (s *Itch50HistDataSource) NextTime() time.Time { return s.nextTimeField }

func (s *Itch50HistDataSource) NextMessage() []byte {
	if s.nextMsgSize == 0 {
		return nil
	}
	start := s.currentOffset + 2
	return s.data[start : start+s.nextMsgSize]
}

func (s *Itch50HistDataSource) HasMessage() bool { return s.nextMsgSize != 0 }

func (s *Itch50HistDataSource) SetEndTime(t time.Time) { s.endTime = t }

func (s *Itch50HistDataSource) Seek(t time.Time) time.Time {
	for s.nextTimeField.Before(t) {
		s.Advance()
	}
	return s.nextTimeField
}

// Advance moves the read cursor past the current frame and parses the
// next one's header far enough to learn its timestamp, unmapping any
// page chunks the cursor has now fully passed.
func (s *Itch50HistDataSource) Advance() time.Time {
	if s.nextMsgSize != 0 {
		s.currentOffset += 2 + s.nextMsgSize
		if s.currentOffset >= s.unmappedSize+unmapChunkSize {
			unmapSz := (s.currentOffset - s.unmappedSize) / unmapChunkSize * unmapChunkSize
			s.unmapBehind(unmapSz)
		}
	}

	msgStart := s.currentOffset + 2
	if msgStart < s.totalSize {
		msgSize := int(s.data[s.currentOffset])<<8 | int(s.data[s.currentOffset+1])
		if msgSize >= 11 && msgStart+msgSize <= s.totalSize {
			header := s.data[msgStart : msgStart+11]
			nanos := uint64(header[5])<<40 | uint64(header[6])<<32 | uint64(header[7])<<24 |
				uint64(header[8])<<16 | uint64(header[9])<<8 | uint64(header[10])
			candidate := s.midnight.Add(time.Duration(nanos))
			if !candidate.After(s.endTime) {
				s.nextTimeField = candidate
				s.nextMsgSize = msgSize
				return s.nextTimeField
			}
			s.currentOffset = s.totalSize
		}
	}

	s.currentOffset = s.totalSize
	s.nextTimeField = MaxTime
	s.nextMsgSize = 0
	return s.nextTimeField
}

// unmapBehind releases unmapSz bytes starting at the current unmapped
// boundary via a raw munmap syscall. Partial-region unmap bypasses
// golang.org/x/sys/unix's Mmap/Munmap pairing (which tracks only whole
// original mappings), since the kernel itself allows unmapping a
// sub-range of a larger mapping.
func (s *Itch50HistDataSource) unmapBehind(unmapSz int) {
	if unmapSz <= 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(&s.data[s.unmappedSize]))
	_, _, errno := unix.RawSyscall(unix.SYS_MUNMAP, addr, uintptr(unmapSz), 0)
	if errno == 0 {
		s.unmappedSize += unmapSz
	}
}

// Close unmaps whatever remains of the file. Safe to call even after
// unmapBehind has already released a prefix: re-unmapping an
// already-unmapped range is a no-op for the kernel.
func (s *Itch50HistDataSource) Close() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	return err
}
