package redisstore

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

// The snapshot wire format is a JSON array of cart lines. Decimal amounts
// travel as strings so no precision is lost in transit.

func encodeSnapshot(c cart.Cart) []byte {
	e := &jx.Encoder{}
	e.ArrStart()
	for _, line := range c.Lines {
		encodeLine(e, line)
	}
	e.ArrEnd()
	return e.Bytes()
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(l.ID)
	e.FieldStart("quantity")
	e.Int(l.Quantity)
	if len(l.SelectedVariant) > 0 {
		e.FieldStart("selected_variant")
		e.ObjStart()
		for axis, value := range l.SelectedVariant {
			e.FieldStart(axis)
			e.Str(value)
		}
		e.ObjEnd()
	}
	e.FieldStart("product")
	encodeProduct(e, l.Product)
	e.ObjEnd()
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("brand")
	e.Str(p.Brand)
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("price")
	e.Str(p.Price.String())
	if p.RegularPrice != nil {
		e.FieldStart("regular_price")
		e.Str(p.RegularPrice.String())
	}
	e.FieldStart("stock")
	e.Int(p.Stock)
	e.FieldStart("shipping_saver")
	e.Bool(p.ShippingSaver)
	if p.Tag != "" {
		e.FieldStart("tag")
		e.Str(p.Tag)
	}
	e.FieldStart("image_url")
	e.Str(p.ImageURL)
	if p.Rating != nil {
		e.FieldStart("rating")
		e.Str(p.Rating.String())
	}
	if p.ReviewCount > 0 {
		e.FieldStart("review_count")
		e.Int(p.ReviewCount)
	}
	e.ObjEnd()
}

func decodeSnapshot(data []byte) (cart.Cart, error) {
	d := jx.DecodeBytes(data)

	var c cart.Cart
	if err := d.Arr(func(d *jx.Decoder) error {
		line, err := decodeLine(d)
		if err != nil {
			return err
		}
		c.Lines = append(c.Lines, line)
		return nil
	}); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

func decodeLine(d *jx.Decoder) (cart.Line, error) {
	var l cart.Line
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			if err != nil {
				return err
			}
			l.ID = v
		case "quantity":
			v, err := d.Int()
			if err != nil {
				return err
			}
			l.Quantity = v
		case "selected_variant":
			l.SelectedVariant = map[string]string{}
			return d.Obj(func(d *jx.Decoder, axis string) error {
				v, err := d.Str()
				if err != nil {
					return err
				}
				l.SelectedVariant[axis] = v
				return nil
			})
		case "product":
			p, err := decodeProduct(d)
			if err != nil {
				return err
			}
			l.Product = p
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return cart.Line{}, err
	}
	if l.ID == "" || l.Quantity < 1 {
		return cart.Line{}, errors.Errorf("invalid cart line %q", l.ID)
	}
	return l, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return err
			}
			p.ID = v
		case "name":
			return decodeStr(d, &p.Name)
		case "brand":
			return decodeStr(d, &p.Brand)
		case "category":
			return decodeStr(d, &p.Category)
		case "price":
			return decodeDecimal(d, &p.Price)
		case "regular_price":
			var v decimal.Decimal
			if err := decodeDecimal(d, &v); err != nil {
				return err
			}
			p.RegularPrice = &v
		case "stock":
			v, err := d.Int()
			if err != nil {
				return err
			}
			p.Stock = v
		case "shipping_saver":
			v, err := d.Bool()
			if err != nil {
				return err
			}
			p.ShippingSaver = v
		case "tag":
			return decodeStr(d, &p.Tag)
		case "image_url":
			return decodeStr(d, &p.ImageURL)
		case "rating":
			var v decimal.Decimal
			if err := decodeDecimal(d, &v); err != nil {
				return err
			}
			p.Rating = &v
		case "review_count":
			v, err := d.Int()
			if err != nil {
				return err
			}
			p.ReviewCount = v
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return product.Product{}, err
	}
	return p, nil
}

func decodeStr(d *jx.Decoder, dst *string) error {
	v, err := d.Str()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func decodeDecimal(d *jx.Decoder, dst *decimal.Decimal) error {
	s, err := d.Str()
	if err != nil {
		return err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return errors.Wrapf(err, "parse decimal %q", s)
	}
	*dst = v
	return nil
}
