package log

import (
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is the allocation-free counterpart of Entry: fields accumulate in a
// fixed buffer and nothing is formatted until End. A nil *EntryZ (disabled
// module) absorbs the whole chain for free.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfidx int
	zfbuf [16]ZField
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	return entryzPool.Get().(*EntryZ)
}

func (z *EntryZ) field(typ FieldType, key string) *ZField {
	if z.zfidx == len(z.zfbuf) {
		// Silently drop extra fields.
		return &ZField{}
	}
	f := &z.zfbuf[z.zfidx]
	z.zfidx++
	f.Type = typ
	f.Key = key
	return f
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	if z != nil {
		z.field(FieldTypeBool, key).Boolean = val
	}
	return z
}

func (z *EntryZ) String(key string, val string) *EntryZ {
	if z != nil {
		z.field(FieldTypeString, key).String = val
	}
	return z
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	if z != nil {
		z.field(FieldTypeInt, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Uint(key string, val uint) *EntryZ {
	if z != nil {
		z.field(FieldTypeUint, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Uint8(key string, val uint8) *EntryZ {
	if z != nil {
		z.field(FieldTypeUint, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Uint16(key string, val uint16) *EntryZ {
	if z != nil {
		z.field(FieldTypeUint, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Uint32(key string, val uint32) *EntryZ {
	if z != nil {
		z.field(FieldTypeUint, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Uint64(key string, val uint64) *EntryZ {
	if z != nil {
		z.field(FieldTypeUint, key).Integer = val
	}
	return z
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if z != nil {
		z.field(FieldTypeHex8, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if z != nil {
		z.field(FieldTypeHex16, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Hex32(key string, val uint32) *EntryZ {
	if z != nil {
		z.field(FieldTypeHex32, key).Integer = uint64(val)
	}
	return z
}

func (z *EntryZ) Hex64(key string, val uint64) *EntryZ {
	if z != nil {
		z.field(FieldTypeHex64, key).Integer = val
	}
	return z
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	if z != nil {
		z.field(FieldTypeError, key).Error = err
	}
	return z
}

func (z *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	if z != nil {
		z.field(FieldTypeDuration, key).Duration = d
	}
	return z
}

func (z *EntryZ) Blob(key string, blob []byte) *EntryZ {
	if z != nil {
		z.field(FieldTypeBlob, key).Blob = blob
	}
	return z
}

// End emits the accumulated entry and recycles it. The EntryZ must not be
// used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	fields := make(logrus.Fields, z.zfidx+len(contexts)+1)
	fields["_mod"] = modNames[z.mod]
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}

	var zctx EntryZ
	for _, c := range contexts {
		c.AddLogContext(&zctx)
	}
	for i := range zctx.zfbuf[:zctx.zfidx] {
		fields[zctx.zfbuf[i].Key] = zctx.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	case ErrorLevel:
		entry.Error(z.msg)
	case FatalLevel:
		entry.Fatal(z.msg)
	case PanicLevel:
		entry.Panic(z.msg)
	}

	*z = EntryZ{}
	entryzPool.Put(z)
}
