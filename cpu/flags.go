package cpu

// The flag rules are kept as plain predicates so each one can be checked
// on its own. The Registers methods below apply them to P and only ever
// touch the bit they're named for.

// isZero reports whether the 8 bit result is zero.
func isZero(res uint8) bool {
	return res == 0x00
}

// isNegative reports whether bit 7 of the result is set.
func isNegative(res uint8) bool {
	return res&0x80 != 0x00
}

// addCarry reports whether an 8 bit ALU addition (passed as the full width
// result) carried out of bit 7.
func addCarry(res uint16) bool {
	return res > 0xFF
}

// compareCarry is the inverted polarity carry used by CMP/CPX/CPY. Carry
// means no borrow was needed, i.e. reg >= val.
func compareCarry(reg uint8, val uint8) bool {
	return reg >= val
}

// addOverflow reports a two's complement overflow for reg + arg = res.
// That happens when both inputs share a sign and the result's sign differs
// from them.
func addOverflow(reg uint8, arg uint8, res uint8) bool {
	return (reg^arg)&0x80 == 0x00 && (reg^res)&0x80 != 0x00
}

// setFlag sets or clears the given P bit(s).
func (r *Registers) setFlag(mask uint8, on bool) {
	if on {
		r.P |= mask
	} else {
		r.P &^= mask
	}
}

// zeroCheck sets the Z flag based on the register contents.
func (r *Registers) zeroCheck(reg uint8) {
	r.setFlag(P_ZERO, isZero(reg))
}

// negativeCheck sets the N flag based on the register contents.
func (r *Registers) negativeCheck(reg uint8) {
	r.setFlag(P_NEGATIVE, isNegative(reg))
}

// carryCheck sets the C flag if the result of an 8 bit ALU operation
// (passed as a 16 bit result) caused a carry out by generating a value >= 0x100.
func (r *Registers) carryCheck(res uint16) {
	r.setFlag(P_CARRY, addCarry(res))
}

// compareCheck sets the C flag using the compare rule.
func (r *Registers) compareCheck(reg uint8, val uint8) {
	r.setFlag(P_CARRY, compareCarry(reg, val))
}

// overflowCheck sets the V flag if the result of the ALU operation
// caused a two's complement sign change.
func (r *Registers) overflowCheck(reg uint8, arg uint8, res uint8) {
	r.setFlag(P_OVERFLOW, addOverflow(reg, arg, res))
}
