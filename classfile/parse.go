package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"
)

var (
	ErrBadMagic           = errors.New("bad magic number")
	ErrUnsupportedVersion = errors.New("unsupported class file version")
)

type parseConfig struct {
	kind     ClassKind
	skipCode bool
}

type ParseOption func(*parseConfig)

// AsLibrary marks the parsed class as a library class. Method bodies are
// dropped since library classes only provide context.
func AsLibrary() ParseOption {
	return func(c *parseConfig) {
		c.kind = LibraryClass
		c.skipCode = true
	}
}

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseFile(path string, opts ...ParseOption) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

func Parse(rd io.Reader, opts ...ParseOption) (*Class, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: 0x%X", ErrBadMagic, magic)
	}

	c := &Class{
		Kind:         cfg.kind,
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("read version: %w", r.err)
	}
	if c.MajorVersion < MinSupportedMajorVersion || c.MajorVersion > MaxSupportedMajorVersion {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, c.MajorVersion, c.MinorVersion)
	}

	if err := readConstantPool(r, c); err != nil {
		return nil, err
	}

	c.AccessFlags = AccessFlags(r.readU2())
	c.ThisClass = r.readU2()
	c.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	c.Interfaces = make([]uint16, interfacesCount)
	for i := range c.Interfaces {
		c.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("read class info: %w", r.err)
	}

	fieldsCount := r.readU2()
	c.Fields = make([]*Field, 0, fieldsCount)
	for i := uint16(0); i < fieldsCount; i++ {
		f := &Field{
			Owner:           c,
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
		attrs, err := readAttributes(r, c.ConstantPool, cfg)
		if err != nil {
			return nil, fmt.Errorf("read field %d: %w", i, err)
		}
		f.Attributes = attrs
		c.Fields = append(c.Fields, f)
	}

	methodsCount := r.readU2()
	c.Methods = make([]*Method, 0, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		m := &Method{
			Owner:           c,
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
		attrs, err := readAttributes(r, c.ConstantPool, cfg)
		if err != nil {
			return nil, fmt.Errorf("read method %d: %w", i, err)
		}
		m.Attributes = attrs
		c.Methods = append(c.Methods, m)
	}

	attrs, err := readAttributes(r, c.ConstantPool, cfg)
	if err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	c.Attributes = attrs

	return c, nil
}

func readConstantPool(r *reader, c *Class) error {
	count := r.readU2()
	if r.err != nil {
		return fmt.Errorf("read constant pool count: %w", r.err)
	}
	if count == 0 {
		return fmt.Errorf("read constant pool: empty pool")
	}

	c.ConstantPool = make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return fmt.Errorf("read constant pool entry %d: %w", i, err)
		}
		c.ConstantPool[i-1] = entry
		if wide {
			i++
		}
	}
	return nil
}

// readConstantPoolEntry reads one entry. wide is true for longs and doubles,
// which take up two slots.
func readConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tag := ConstantTag(r.readU1())

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(int(length)))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		high, low := r.readU4(), r.readU4()
		entry, wide = &ConstantLongInfo{Value: int64(high)<<32 | int64(low)}, true
	case ConstantDouble:
		high, low := r.readU4(), r.readU4()
		entry, wide = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}, true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(r.readU1()), ReferenceIndex: r.readU2()}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic:
		entry = &ConstantDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantModule:
		entry = &ConstantModuleInfo{NameIndex: r.readU2()}
	case ConstantPackage:
		entry = &ConstantPackageInfo{NameIndex: r.readU2()}
	default:
		if r.err != nil {
			return nil, false, r.err
		}
		return nil, false, fmt.Errorf("unknown constant pool tag: %d", tag)
	}

	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

func readAttributes(r *reader, cp ConstantPool, cfg parseConfig) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}

	attrs := make([]AttributeInfo, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}

		name := cp.GetUtf8(nameIndex)
		if cfg.skipCode && name == AttrCode {
			continue
		}
		parsed, err := decodeAttribute(name, info, cp)
		if err != nil {
			return nil, fmt.Errorf("decode %s attribute: %w", name, err)
		}
		attrs = append(attrs, AttributeInfo{NameIndex: nameIndex, Info: info, Parsed: parsed})
	}
	return attrs, nil
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8, where NUL takes two
// bytes and supplementary characters are encoded as surrogate pairs.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
