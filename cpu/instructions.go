package cpu

// Every instruction takes the resolved operand and returns any extra cycles
// beyond the table cost. Only taken branches return non-zero. Page crossing
// penalties for indexed reads are applied by Step from the table.

// loadRegister sets reg to val and updates Z/N from it.
// This is the common tail for loads, transfers and the logical ops.
func (p *Processor) loadRegister(reg *uint8, val uint8) {
	*reg = val
	p.zeroCheck(*reg)
	p.negativeCheck(*reg)
}

// read returns the byte at the operand address.
func (p *Processor) read(arg Operand) uint8 {
	return p.Ram.Read(arg.Addr)
}

// rmw reads the operand, runs op on it and writes the result back to the same address.
func (p *Processor) rmw(arg Operand, op func(uint8) uint8) {
	p.Ram.Write(arg.Addr, op(p.read(arg)))
}

func (p *Processor) iLDA(arg Operand) int {
	p.loadRegister(&p.A, p.read(arg))
	return 0
}

func (p *Processor) iLDX(arg Operand) int {
	p.loadRegister(&p.X, p.read(arg))
	return 0
}

func (p *Processor) iLDY(arg Operand) int {
	p.loadRegister(&p.Y, p.read(arg))
	return 0
}

func (p *Processor) iSTA(arg Operand) int {
	p.Ram.Write(arg.Addr, p.A)
	return 0
}

func (p *Processor) iSTX(arg Operand) int {
	p.Ram.Write(arg.Addr, p.X)
	return 0
}

func (p *Processor) iSTY(arg Operand) int {
	p.Ram.Write(arg.Addr, p.Y)
	return 0
}

// adc does binary add with carry into A and sets N/Z/C/V.
// The Ricoh part has no BCD so D is ignored.
func (p *Processor) adc(arg uint8) {
	// Pull the carry bit out which thankfully is the low bit so can be
	// used directly.
	carry := p.P & P_CARRY
	sum := uint16(p.A) + uint16(arg) + uint16(carry)
	res := uint8(sum)
	p.overflowCheck(p.A, arg, res)
	p.carryCheck(sum)
	// Now set the accumulator so the other flag checks are against the result.
	p.loadRegister(&p.A, res)
}

func (p *Processor) iADC(arg Operand) int {
	p.adc(p.read(arg))
	return 0
}

// iSBC is ADC of the ones complement of the operand. With C acting as
// not-borrow that's identical to A - M - (1 - C).
func (p *Processor) iSBC(arg Operand) int {
	p.adc(^p.read(arg))
	return 0
}

func (p *Processor) iAND(arg Operand) int {
	p.loadRegister(&p.A, p.A&p.read(arg))
	return 0
}

func (p *Processor) iORA(arg Operand) int {
	p.loadRegister(&p.A, p.A|p.read(arg))
	return 0
}

func (p *Processor) iEOR(arg Operand) int {
	p.loadRegister(&p.A, p.A^p.read(arg))
	return 0
}

// iBIT ANDs the operand against A for Z and copies bits 7/6 into N/V.
// A is unchanged.
func (p *Processor) iBIT(arg Operand) int {
	val := p.read(arg)
	p.zeroCheck(p.A & val)
	p.negativeCheck(val)
	p.setFlag(P_OVERFLOW, val&P_OVERFLOW != 0x00)
	return 0
}

// compare sets flags as if val were subtracted from reg without storing anything.
func (p *Processor) compare(reg uint8, val uint8) {
	p.compareCheck(reg, val)
	p.zeroCheck(reg - val)
	p.negativeCheck(reg - val)
}

func (p *Processor) iCMP(arg Operand) int {
	p.compare(p.A, p.read(arg))
	return 0
}

func (p *Processor) iCPX(arg Operand) int {
	p.compare(p.X, p.read(arg))
	return 0
}

func (p *Processor) iCPY(arg Operand) int {
	p.compare(p.Y, p.read(arg))
	return 0
}

func (p *Processor) inc(val uint8) uint8 {
	val++
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) dec(val uint8) uint8 {
	val--
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) iINC(arg Operand) int {
	p.rmw(arg, p.inc)
	return 0
}

func (p *Processor) iDEC(arg Operand) int {
	p.rmw(arg, p.dec)
	return 0
}

func (p *Processor) iINX(_ Operand) int {
	p.X = p.inc(p.X)
	return 0
}

func (p *Processor) iINY(_ Operand) int {
	p.Y = p.inc(p.Y)
	return 0
}

func (p *Processor) iDEX(_ Operand) int {
	p.X = p.dec(p.X)
	return 0
}

func (p *Processor) iDEY(_ Operand) int {
	p.Y = p.dec(p.Y)
	return 0
}

// asl shifts left with bit 7 going into C.
func (p *Processor) asl(val uint8) uint8 {
	p.carryCheck(uint16(val) << 1)
	val <<= 1
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

// lsr shifts right with bit 0 going into C. N always ends up clear.
func (p *Processor) lsr(val uint8) uint8 {
	p.setFlag(P_CARRY, val&0x01 != 0x00)
	val >>= 1
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

// rol rotates left through C.
func (p *Processor) rol(val uint8) uint8 {
	carry := p.P & P_CARRY
	p.carryCheck(uint16(val) << 1)
	val = (val << 1) | carry
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

// ror rotates right through C.
func (p *Processor) ror(val uint8) uint8 {
	carry := (p.P & P_CARRY) << 7
	p.setFlag(P_CARRY, val&0x01 != 0x00)
	val = (val >> 1) | carry
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) iASLAcc(_ Operand) int {
	p.A = p.asl(p.A)
	return 0
}

func (p *Processor) iASL(arg Operand) int {
	p.rmw(arg, p.asl)
	return 0
}

func (p *Processor) iLSRAcc(_ Operand) int {
	p.A = p.lsr(p.A)
	return 0
}

func (p *Processor) iLSR(arg Operand) int {
	p.rmw(arg, p.lsr)
	return 0
}

func (p *Processor) iROLAcc(_ Operand) int {
	p.A = p.rol(p.A)
	return 0
}

func (p *Processor) iROL(arg Operand) int {
	p.rmw(arg, p.rol)
	return 0
}

func (p *Processor) iRORAcc(_ Operand) int {
	p.A = p.ror(p.A)
	return 0
}

func (p *Processor) iROR(arg Operand) int {
	p.rmw(arg, p.ror)
	return 0
}

// branch moves PC to the relative target when cond holds.
// A taken branch costs one more cycle and another if the target is on a
// different page than the instruction after the branch.
func (p *Processor) branch(cond bool, arg Operand) int {
	if !cond {
		return 0
	}
	p.PC = arg.Addr
	if arg.Crossed {
		return 2
	}
	return 1
}

func (p *Processor) iBCC(arg Operand) int { return p.branch(!p.Carry(), arg) }
func (p *Processor) iBCS(arg Operand) int { return p.branch(p.Carry(), arg) }
func (p *Processor) iBEQ(arg Operand) int { return p.branch(p.Zero(), arg) }
func (p *Processor) iBNE(arg Operand) int { return p.branch(!p.Zero(), arg) }
func (p *Processor) iBMI(arg Operand) int { return p.branch(p.Negative(), arg) }
func (p *Processor) iBPL(arg Operand) int { return p.branch(!p.Negative(), arg) }
func (p *Processor) iBVS(arg Operand) int { return p.branch(p.Overflow(), arg) }
func (p *Processor) iBVC(arg Operand) int { return p.branch(!p.Overflow(), arg) }

// flagOp returns an instruction which sets or clears a single P bit.
func flagOp(mask uint8, on bool) func(*Processor, Operand) int {
	return func(p *Processor, _ Operand) int {
		p.setFlag(mask, on)
		return 0
	}
}

func (p *Processor) iJMP(arg Operand) int {
	p.PC = arg.Addr
	return 0
}

func (p *Processor) iTAX(_ Operand) int {
	p.loadRegister(&p.X, p.A)
	return 0
}

func (p *Processor) iTAY(_ Operand) int {
	p.loadRegister(&p.Y, p.A)
	return 0
}

func (p *Processor) iTXA(_ Operand) int {
	p.loadRegister(&p.A, p.X)
	return 0
}

func (p *Processor) iTYA(_ Operand) int {
	p.loadRegister(&p.A, p.Y)
	return 0
}

func (p *Processor) iTSX(_ Operand) int {
	p.loadRegister(&p.X, p.S)
	return 0
}

// iTXS is the one transfer which doesn't touch flags.
func (p *Processor) iTXS(_ Operand) int {
	p.S = p.X
	return 0
}

func (p *Processor) iNOP(_ Operand) int {
	return 0
}
