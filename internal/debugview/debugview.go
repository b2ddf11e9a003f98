// Package debugview is a termui register/memory inspector for armemu,
// in the same spirit as the childhood console's pure6502 debugger: a
// handful of Paragraph widgets redrawn after every step, driven from a
// keyboard event loop.
package debugview

import (
	"fmt"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	arm "github.com/user-none/go-chip-arm"
)

const accessLogDepth = 12

type access struct {
	addr  uint32
	width arm.Width
	write bool
	value uint32
}

// View is a termui front-end that also implements arm.Debugger, logging
// the most recent bus accesses for display.
type View struct {
	cpu *arm.CPU

	regs *widgets.Paragraph
	code *widgets.Paragraph
	accs *widgets.Paragraph
	tips *widgets.Paragraph

	log [accessLogDepth]access
	pos int
}

// New builds a View over cpu. Call Init before the first Draw.
func New(cpu *arm.CPU) *View {
	v := &View{cpu: cpu}
	v.regs = widgets.NewParagraph()
	v.regs.Title = "CPU"
	v.regs.SetRect(0, 0, 44, 12)

	v.code = widgets.NewParagraph()
	v.code.Title = "Last Fault"
	v.code.SetRect(44, 0, 90, 12)

	v.accs = widgets.NewParagraph()
	v.accs.Title = "Bus Accesses"
	v.accs.SetRect(0, 12, 90, 12+accessLogDepth+2)

	v.tips = widgets.NewParagraph()
	v.tips.Title = "Tips"
	v.tips.SetRect(0, 12+accessLogDepth+2, 90, 15+accessLogDepth+2)
	v.tips.Text = "SPACE = Step    Q = Quit"

	return v
}

// Init brings up the termui terminal backend. Callers must defer Close.
func Init() error { return ui.Init() }

// Close tears down the termui terminal backend.
func Close() { ui.Close() }

// OnLoad implements arm.Debugger.
func (v *View) OnLoad(addr uint32, width arm.Width) {
	v.record(access{addr: addr, width: width})
}

// OnStore implements arm.Debugger.
func (v *View) OnStore(addr uint32, width arm.Width, value uint32) {
	v.record(access{addr: addr, width: width, write: true, value: value})
}

func (v *View) record(a access) {
	v.log[v.pos%accessLogDepth] = a
	v.pos++
}

func (v *View) renderRegs() {
	regs := v.cpu.Registers()
	sb := &strings.Builder{}
	for i := 0; i < 15; i++ {
		fmt.Fprintf(sb, "R%-2d %08x  ", i, regs.R[i])
		if i%4 == 3 {
			sb.WriteRune('\n')
		}
	}
	fmt.Fprintf(sb, "\nPC  %08x  CPSR %08x\n", regs.PC, regs.CPSR)
	v.regs.Text = sb.String()
}

func (v *View) renderFault() {
	if f := v.cpu.LastFault(); f != nil {
		v.code.Text = f.Error()
	} else {
		v.code.Text = "(running)"
	}
}

func (v *View) renderAccesses() {
	sb := &strings.Builder{}
	for i := 0; i < accessLogDepth; i++ {
		a := v.log[(v.pos+i)%accessLogDepth]
		if a.width == 0 {
			continue
		}
		dir := "R"
		if a.write {
			dir = "W"
		}
		fmt.Fprintf(sb, "%s %08x %-8s %08x\n", dir, a.addr, a.width, a.value)
	}
	v.accs.Text = sb.String()
}

// Draw repaints every panel against the current CPU state.
func (v *View) Draw() {
	v.renderRegs()
	v.renderFault()
	v.renderAccesses()
	ui.Render(v.regs, v.code, v.accs, v.tips)
}

// PollEvents exposes the underlying termui event channel so the caller
// can drive its own step loop (SPACE to step, Q to quit).
func PollEvents() <-chan ui.Event {
	return ui.PollEvents()
}
