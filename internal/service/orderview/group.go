package orderview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"bakery-dispatch/internal/domain"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// DateLabel formats t as "02 Januari 2006" in loc.
func DateLabel(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// TimeLabel formats t as "15.04" in loc.
func TimeLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15.04")
}

// TimeBucket holds the orders created within one minute.
type TimeBucket struct {
	Time   string
	Orders []domain.Order
}

// DateBucket holds the time buckets of one calendar day.
type DateBucket struct {
	Date  string
	Times []TimeBucket
}

// GroupedOrders is a date -> time -> orders view, newest first.
type GroupedOrders []DateBucket

// Len returns the number of orders in the view.
func (g GroupedOrders) Len() int {
	n := 0
	for _, d := range g {
		for _, tb := range d.Times {
			n += len(tb.Orders)
		}
	}
	return n
}

// Assemble folds flat order/item rows into orders, newest first.
// Items keep their input order within each order.
func Assemble(rows []domain.OrderItemRow) []domain.Order {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.OrderItemRow) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.OrderID > b.OrderID:
			return -1
		case a.OrderID < b.OrderID:
			return 1
		}
		return 0
	})

	out := make([]domain.Order, 0)
	index := make(map[int64]int)
	for _, r := range sorted {
		i, ok := index[r.OrderID]
		if !ok {
			i = len(out)
			index[r.OrderID] = i
			out = append(out, r.Header())
		}
		out[i].Items = append(out[i].Items, r.Item)
	}
	return out
}

// GroupOrders buckets the rows by calendar date, then by minute, both in loc.
// Buckets and orders within them are newest first.
func GroupOrders(rows []domain.OrderItemRow, loc *time.Location) GroupedOrders {
	if loc == nil {
		loc = time.UTC
	}

	var (
		out   GroupedOrders
		days  = make(map[string]int)
		times = make(map[[2]string]int)
	)
	for _, o := range Assemble(rows) {
		date, clock := DateLabel(o.CreatedAt, loc), TimeLabel(o.CreatedAt, loc)

		// wall clocks repeat across a DST fall-back, so labels are looked up, not just compared
		di, ok := days[date]
		if !ok {
			di = len(out)
			days[date] = di
			out = append(out, DateBucket{Date: date})
		}
		day := &out[di]

		key := [2]string{date, clock}
		ti, ok := times[key]
		if !ok {
			ti = len(day.Times)
			times[key] = ti
			day.Times = append(day.Times, TimeBucket{Time: clock})
		}
		day.Times[ti].Orders = append(day.Times[ti].Orders, o)
	}
	return out
}

// Encode renders the view as ordered JSON objects, converting each order with fn.
func (g GroupedOrders) Encode(fn func(domain.Order) any) json.Marshaler {
	return encodedView{view: g, convert: fn}
}

type encodedView struct {
	view    GroupedOrders
	convert func(domain.Order) any
}

// MarshalJSON writes {"date": {"time": [orders]}} keeping bucket order.
func (e encodedView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range e.view {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, d.Date); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, tb := range d.Times {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, tb.Time); err != nil {
				return nil, err
			}
			items := make([]any, len(tb.Orders))
			for k, o := range tb.Orders {
				items[k] = e.convert(o)
			}
			b, err := json.Marshal(items)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}
