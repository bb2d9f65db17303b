package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
)

// Variant names a deployed ledger layout. The header row, the order-code
// suffix scheme and the code tail width are coupled and must change together,
// so they live in one descriptor selected once per deployment.
type Variant string

const (
	// VariantLegacy14 is the oldest layout: 14 columns, one shared segment
	// prefix, codes carry only the date tail (8 chars) and no type suffix.
	VariantLegacy14 Variant = "legacy14"
	// VariantStandard15 adds the discount column and flow-type suffixes but
	// has no delivery-date or note columns.
	VariantStandard15 Variant = "standard15"
	// VariantFull17 is the current layout with delivery date and note.
	VariantFull17 Variant = "full17"
)

type flowKind struct {
	flow enum.Flow
	kind enum.CounterpartyKind
}

// Schema describes one ledger layout: the ordered header row, how order
// codes are built and parsed, and how a record maps to a row. Column order
// is declared here once, never implied by write-call ordering.
type Schema struct {
	Variant     Variant
	Header      []string
	TailWidth   int
	HasDiscount bool
	HasDelivery bool
	HasNote     bool

	prefixes map[flowKind]string
	suffixes map[flowKind]string
}

var typedPrefixes = map[flowKind]string{
	{enum.FlowSell, enum.CounterpartyDealer}:    "Ban_Dai_Ly",
	{enum.FlowSell, enum.CounterpartyWalkIn}:    "Ban_Khach_Le",
	{enum.FlowBuyBack, enum.CounterpartyDealer}: "Mua_Dai_Ly",
	{enum.FlowBuyBack, enum.CounterpartyWalkIn}: "Mua_Khach_Le",
}

var typedSuffixes = map[flowKind]string{
	{enum.FlowSell, enum.CounterpartyDealer}:    "BDL",
	{enum.FlowSell, enum.CounterpartyWalkIn}:    "BKL",
	{enum.FlowBuyBack, enum.CounterpartyDealer}: "MDL",
	{enum.FlowBuyBack, enum.CounterpartyWalkIn}: "MKL",
}

var schemas = map[Variant]Schema{
	VariantLegacy14: {
		Variant: VariantLegacy14,
		Header: []string{
			"Mã đơn", "Đại lý/Khách", "Sản phẩm", "Giá chốt", "Giá hiện tại",
			"Số lượng", "Tổng", "Tiền CK", "Thành tiền", "Tổng mới", "CK mới",
			"Thành tiền mới", "Nhân viên", "Thời gian",
		},
		TailWidth: 8,
		prefixes: map[flowKind]string{
			{enum.FlowSell, enum.CounterpartyDealer}:    "Ket_Qua",
			{enum.FlowSell, enum.CounterpartyWalkIn}:    "Ket_Qua",
			{enum.FlowBuyBack, enum.CounterpartyDealer}: "Ket_Qua",
			{enum.FlowBuyBack, enum.CounterpartyWalkIn}: "Ket_Qua",
		},
		suffixes: map[flowKind]string{},
	},
	VariantStandard15: {
		Variant: VariantStandard15,
		Header: []string{
			"Mã đơn", "Đại lý/Khách", "Chiết khấu (%)", "Sản phẩm", "Giá chốt",
			"Giá hiện tại", "Số lượng", "Tổng", "Tiền CK", "Thành tiền",
			"Tổng mới", "CK mới", "Thành tiền mới", "Nhân viên", "Thời gian",
		},
		TailWidth:   11,
		HasDiscount: true,
		prefixes:    typedPrefixes,
		suffixes:    typedSuffixes,
	},
	VariantFull17: {
		Variant: VariantFull17,
		Header: []string{
			"Mã đơn", "Đại lý/Khách", "Chiết khấu (%)", "Sản phẩm", "Giá chốt",
			"Giá hiện tại", "Số lượng", "Tổng", "Tiền CK", "Thành tiền",
			"Tổng mới", "CK mới", "Thành tiền mới", "Nhân viên", "Thời gian",
			"Ngày giao", "Ghi chú",
		},
		TailWidth:   11,
		HasDiscount: true,
		HasDelivery: true,
		HasNote:     true,
		prefixes:    typedPrefixes,
		suffixes:    typedSuffixes,
	},
}

// ForVariant returns the schema descriptor for a configured variant name.
func ForVariant(v Variant) (Schema, error) {
	s, ok := schemas[v]
	if !ok {
		return Schema{}, fmt.Errorf("unknown ledger schema variant %q", v)
	}
	return s, nil
}

// Columns returns the number of columns in this layout.
func (s Schema) Columns() int {
	return len(s.Header)
}

// SegmentPrefix returns the daily-segment title prefix for a flow and
// counterparty kind.
func (s Schema) SegmentPrefix(flow enum.Flow, kind enum.CounterpartyKind) string {
	return s.prefixes[flowKind{flow, kind}]
}

// Suffix returns the order-code type suffix for a flow and counterparty
// kind. Empty on layouts that predate typed codes.
func (s Schema) Suffix(flow enum.Flow, kind enum.CounterpartyKind) string {
	return s.suffixes[flowKind{flow, kind}]
}

// SegmentTitle builds the daily segment title for a prefix and business day.
func SegmentTitle(prefix string, day time.Time) string {
	return fmt.Sprintf("%s_%02d_%02d_%04d", prefix, day.Day(), int(day.Month()), day.Year())
}

// BuildCode assembles an order code: sequence, then DDMMYYYY, then the
// flow-type suffix. The tail width used by SequenceFromCode must match.
func (s Schema) BuildCode(seq int, day time.Time, flow enum.Flow, kind enum.CounterpartyKind) string {
	return fmt.Sprintf("%d%02d%02d%04d%s", seq, day.Day(), int(day.Month()), day.Year(), s.Suffix(flow, kind))
}

// SequenceFromCode recovers the sequence number from an existing order code
// by stripping the fixed-width date+suffix tail. It returns false for codes
// that are too short, unparseable or non-positive, so a bad row contributes
// no candidate rather than a candidate of zero.
func (s Schema) SequenceFromCode(code string) (int, bool) {
	code = strings.TrimSpace(code)
	if len(code) <= s.TailWidth {
		return 0, false
	}
	n, err := strconv.Atoi(code[:len(code)-s.TailWidth])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Row maps a record to an ordered cell list for this layout. A zero live
// price is written as a blank cell, matching how the desk reads the sheet.
func (s Schema) Row(rec entity.OrderRecord) []interface{} {
	row := make([]interface{}, 0, s.Columns())
	row = append(row, rec.Code, rec.Counterparty)
	if s.HasDiscount {
		row = append(row, rec.DiscountPercent)
	}
	row = append(row, rec.Product, rec.LockedPrice, blankIfZero(rec.LivePrice), rec.Quantity,
		rec.LockedSubtotal, rec.LockedDiscount, rec.LockedFinal,
		rec.LiveSubtotal, rec.LiveDiscount, rec.LiveFinal,
		rec.Operator, rec.Time)
	if s.HasDelivery {
		row = append(row, rec.DeliveryDate)
	}
	if s.HasNote {
		row = append(row, rec.Note)
	}
	return row
}

func blankIfZero(v float64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}
