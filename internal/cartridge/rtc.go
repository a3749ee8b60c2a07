package cartridge

import "time"

// RTC register indices, as selected by RAM-bank values 0x08-0x0C.
const (
	rtcSeconds = iota // seconds, 0-59
	rtcMinutes        // minutes, 0-59
	rtcHours          // hours, 0-23
	rtcDayLow         // low 8 bits of the day counter
	rtcFlags          // day counter bit 8, halt, day-overflow carry
)

// Bits of the flags register.
const (
	rtcDayHigh uint8 = 0x01 // bit 8 of the 9-bit day counter
	rtcHalt    uint8 = 0x40 // clock halted, registers frozen
	rtcCarry   uint8 = 0x80 // day counter overflowed past 511
)

// rtcClock models the MBC3 real-time clock. The five visible registers are
// derived on demand from a reference epoch (zero, in Unix seconds): update
// computes registers from the epoch, rebase recomputes the epoch from the
// registers. Keeping the two directions as separate explicit calls avoids
// hidden mutual recursion; the only place update triggers a rebase is the
// day-counter overflow.
//
// valid is false for clock-incapable cartridge types; both operations are
// then no-ops and the persisted epoch stays 0.
type rtcClock struct {
	regs  [5]uint8
	zero  int64
	valid bool
	now   func() int64
}

func newRTCClock(valid bool) rtcClock {
	return rtcClock{
		valid: valid,
		now:   func() int64 { return time.Now().Unix() },
	}
}

// update derives the visible registers from the reference epoch. Frozen while
// the halt flag is set.
func (r *rtcClock) update() {
	if !r.valid {
		return
	}
	if r.regs[rtcFlags]&rtcHalt != 0 {
		return
	}

	elapsed := r.now() - r.zero
	if elapsed < 0 {
		elapsed = 0
	}

	r.regs[rtcSeconds] = uint8(elapsed % 60)
	r.regs[rtcMinutes] = uint8((elapsed / 60) % 60)
	r.regs[rtcHours] = uint8((elapsed / 3600) % 24)
	days := elapsed / 86400
	r.regs[rtcDayLow] = uint8(days)
	r.regs[rtcFlags] = (r.regs[rtcFlags] &^ rtcDayHigh) | uint8((days>>8)&0x01)

	// The day counter is 9 bits. Once it would wrap, raise the carry flag
	// and rebase the epoch from the truncated registers so the counter does
	// not silently wrap again without software noticing.
	if days >= 512 {
		r.regs[rtcFlags] |= rtcCarry
		r.rebase()
	}
}

// rebase recomputes the reference epoch from the visible registers, keeping
// elapsed-time derivation consistent with whatever values software has
// written into them.
func (r *rtcClock) rebase() {
	if !r.valid {
		return
	}
	days := int64(r.regs[rtcFlags]&rtcDayHigh)<<8 | int64(r.regs[rtcDayLow])
	r.zero = r.now() -
		int64(r.regs[rtcSeconds]) -
		int64(r.regs[rtcMinutes])*60 -
		int64(r.regs[rtcHours])*3600 -
		days*86400
}
