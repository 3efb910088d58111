package exchange

// Slot indices are stable and match the order venues were added in
// the feeder this package is descended from.
const (
	SlotBinance = iota
	SlotOKX
	SlotHuobi
	SlotMEXC
	SlotBybit
	SlotBitget
	SlotGate
	SlotCoinbase
	SlotCryptoDotCom
	SlotKraken
)

// Default constructs every wired adapter at its reserved slot. The
// adapter set is open: adding a venue means implementing Adapter and
// appending both a Slot constant here and a constructor call below.
func Default() []Adapter {
	return []Adapter{
		NewBinance(SlotBinance),
		NewOKX(SlotOKX),
		NewHuobi(SlotHuobi),
		NewMEXC(SlotMEXC),
		NewBybit(SlotBybit),
		NewBitget(SlotBitget),
		NewGate(SlotGate),
		NewCoinbase(SlotCoinbase),
		NewCryptoDotCom(SlotCryptoDotCom),
		NewKraken(SlotKraken),
	}
}
