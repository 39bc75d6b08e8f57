package space

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/weft"
)

// --- Opaque geometry and element handles --------------------------------

// Cell identifies the reference cell of a domain or element. Cells are
// compared by name.
type Cell interface {
	Name() string
}

// MixedCell groups the cells of a mixed element, one per sub-domain.
// It is itself a Cell, so mixed elements can return it from Cell().
type MixedCell []Cell

// Name of a mixed cell lists the names of its members.
func (mc MixedCell) Name() string {
	names := make([]string, len(mc))
	for i, c := range mc {
		names[i] = c.Name()
	}
	return "mixed(" + strings.Join(names, ",") + ")"
}

// Domain is an opaque handle for the geometric domain a function space
// lives on. weft never inspects a domain beyond its cell and its
// structural fingerprints.
type Domain interface {
	Cell() Cell
	HashData() interface{}
	SignatureData(rn weft.Renumbering) interface{}
}

// Element is an opaque handle for a finite element. The value shape of
// the element determines the shape of coefficients over the space.
type Element interface {
	Cell() Cell
	ValueShape() weft.Shape
	HashData() interface{}
	SignatureData() interface{}
}

// --- The function-space contract -----------------------------------------

// Space is the common contract of all function-space variants.
// Structural fingerprints recursively combine sub-space data; identity
// of the Go values plays no role in space equality.
type Space interface {
	// SubSpaces returns the ordered sub-spaces; empty for a
	// non-composite space.
	SubSpaces() []Space
	// Domains returns a flattened sequence of domains, de-duplicated
	// for composite spaces.
	Domains() []Domain
	// Element returns the unique element of the space, or an error if
	// none or more than one distinct element exists.
	Element() (Element, error)
	// HashData is a renumbering-independent structural fingerprint.
	HashData() interface{}
	// SignatureData is the renumbering-aware structural fingerprint.
	SignatureData(rn weft.Renumbering) interface{}
}

// Equal compares two spaces structurally, via their hash data.
func Equal(a, b Space) bool {
	if a == nil || b == nil {
		return a == b
	}
	return hashKey(a.HashData()) == hashKey(b.HashData())
}

// hashKey reduces a hash-data tree to a digest string. Hash-data trees
// are plain data, a failure to serialize one is a programming error.
func hashKey(data interface{}) string {
	h, err := structhash.Hash(struct{ D interface{} }{data}, 1)
	if err != nil {
		panic(fmt.Sprintf("unhashable hash data: %v", err))
	}
	return h
}

// nothing is the hash-data stand-in for an absent domain or element.
const nothing = "<none>"

// --- FunctionSpace --------------------------------------------------------

// FunctionSpace is a single function space over a domain, with a finite
// element describing the local approximation. The domain may be nil
// (element-only spaces used by some clients) or a tuple of domains for
// mixed-cell elements.
type FunctionSpace struct {
	domain  Domain
	domains []Domain // non-nil iff mixed-cell tuple
	element Element
}

var _ Space = &FunctionSpace{}
var _ Space = &TensorProductFunctionSpace{}
var _ Space = &MixedFunctionSpace{}

// New creates a function space over a single domain. A nil domain is
// accepted; otherwise the domain's cell must match the element's cell.
func New(domain Domain, element Element) (*FunctionSpace, error) {
	if element == nil {
		return nil, fmt.Errorf("function space requires an element")
	}
	if domain != nil {
		if err := checkDomain(domain, element.Cell()); err != nil {
			return nil, err
		}
	}
	return &FunctionSpace{domain: domain, element: element}, nil
}

// NewOnDomains creates a mixed-cell function space over a tuple of
// domains. The element must carry a mixed cell of equal length, and the
// cells must match pairwise.
func NewOnDomains(domains []Domain, element Element) (*FunctionSpace, error) {
	mc, ok := element.Cell().(MixedCell)
	if !ok {
		return nil, fmt.Errorf("mixed domain (tuple) requires an element with a mixed cell (tuple)")
	}
	if len(domains) != len(mc) {
		return nil, fmt.Errorf("mixed cell has %d members, mixed domain has %d, must be equal",
			len(mc), len(domains))
	}
	for i, d := range domains {
		if err := checkDomain(d, mc[i]); err != nil {
			return nil, err
		}
	}
	ds := make([]Domain, len(domains))
	copy(ds, domains)
	return &FunctionSpace{domains: ds, element: element}, nil
}

func checkDomain(d Domain, c Cell) error {
	if d.Cell() == nil {
		return fmt.Errorf("expected non-abstract domain for initialization of function space")
	}
	if d.Cell().Name() != c.Name() {
		return fmt.Errorf("non-matching cell of finite element (%s) and domain (%s)",
			c.Name(), d.Cell().Name())
	}
	return nil
}

// SubSpaces of a plain function space is empty.
func (fs *FunctionSpace) SubSpaces() []Space {
	return nil
}

// Mixed tells if the space lives on a tuple of domains.
func (fs *FunctionSpace) Mixed() bool {
	return fs.domains != nil
}

// Domain returns the single domain, or nil for domain-less and
// mixed-cell spaces.
func (fs *FunctionSpace) Domain() Domain {
	return fs.domain
}

// DomainTuple returns the domain tuple of a mixed-cell space, nil
// otherwise.
func (fs *FunctionSpace) DomainTuple() []Domain {
	return fs.domains
}

// Domains returns all domains of the space.
func (fs *FunctionSpace) Domains() []Domain {
	if fs.Mixed() {
		return fs.domains
	}
	if fs.domain == nil {
		return nil
	}
	return []Domain{fs.domain}
}

// Element returns the finite element of the space.
func (fs *FunctionSpace) Element() (Element, error) {
	return fs.element, nil
}

// HashData combines the fingerprints of domain(s) and element.
func (fs *FunctionSpace) HashData() interface{} {
	var ddata interface{} = nothing
	if fs.Mixed() {
		dd := make([]interface{}, len(fs.domains))
		for i, d := range fs.domains {
			dd[i] = d.HashData()
		}
		ddata = dd
	} else if fs.domain != nil {
		ddata = fs.domain.HashData()
	}
	return []interface{}{"FunctionSpace", ddata, fs.element.HashData()}
}

// SignatureData combines the renumbering-aware fingerprints of
// domain(s) and element.
func (fs *FunctionSpace) SignatureData(rn weft.Renumbering) interface{} {
	var ddata interface{} = nothing
	if fs.Mixed() {
		dd := make([]interface{}, len(fs.domains))
		for i, d := range fs.domains {
			dd[i] = d.SignatureData(rn)
		}
		ddata = dd
	} else if fs.domain != nil {
		ddata = fs.domain.SignatureData(rn)
	}
	return []interface{}{"FunctionSpace", ddata, fs.element.SignatureData()}
}

func (fs *FunctionSpace) String() string {
	return fmt.Sprintf("FunctionSpace(%v, %v)", fs.domain, fs.element)
}

// --- TensorProductFunctionSpace -------------------------------------------

// TensorProductFunctionSpace is the product of an ordered sequence of
// sub-spaces. Unlike a mixed space there is no cell-matching invariant
// between the factors.
type TensorProductFunctionSpace struct {
	spaces []Space
}

// NewTensorProduct composes sub-spaces into a tensor-product space.
func NewTensorProduct(spaces ...Space) *TensorProductFunctionSpace {
	ss := make([]Space, len(spaces))
	copy(ss, spaces)
	return &TensorProductFunctionSpace{spaces: ss}
}

// SubSpaces returns the factors, in order.
func (tp *TensorProductFunctionSpace) SubSpaces() []Space {
	return tp.spaces
}

// Domains returns the joined domains of all factors.
func (tp *TensorProductFunctionSpace) Domains() []Domain {
	var all []Domain
	for _, s := range tp.spaces {
		all = append(all, s.Domains()...)
	}
	return JoinDomains(all)
}

// Element fails: a tensor-product space has no single element.
func (tp *TensorProductFunctionSpace) Element() (Element, error) {
	return nil, fmt.Errorf("tensor-product function space has no single element")
}

// HashData combines the fingerprints of all factors.
func (tp *TensorProductFunctionSpace) HashData() interface{} {
	data := []interface{}{"TensorProductFunctionSpace"}
	for _, s := range tp.spaces {
		data = append(data, s.HashData())
	}
	return data
}

// SignatureData combines the renumbering-aware fingerprints of all
// factors.
func (tp *TensorProductFunctionSpace) SignatureData(rn weft.Renumbering) interface{} {
	data := []interface{}{"TensorProductFunctionSpace"}
	for _, s := range tp.spaces {
		data = append(data, s.SignatureData(rn))
	}
	return data
}

func (tp *TensorProductFunctionSpace) String() string {
	return fmt.Sprintf("TensorProductFunctionSpace(%d factors)", len(tp.spaces))
}

// --- MixedFunctionSpace -----------------------------------------------------

// MixedFunctionSpace composes an ordered sequence of plain function
// spaces. Its domains are the joined domains of all sub-spaces; a single
// element is only exposed when exactly one distinct element exists.
type MixedFunctionSpace struct {
	spaces   []*FunctionSpace
	elements []Element
}

// NewMixed composes function spaces into a mixed space. Every sub-space
// must genuinely be a *FunctionSpace.
func NewMixed(spaces ...Space) (*MixedFunctionSpace, error) {
	mfs := &MixedFunctionSpace{}
	for i, s := range spaces {
		fs, ok := s.(*FunctionSpace)
		if !ok {
			return nil, fmt.Errorf("expecting FunctionSpace objects in mixed function space, sub-space %d is %T", i, s)
		}
		mfs.spaces = append(mfs.spaces, fs)
		mfs.elements = append(mfs.elements, fs.element)
	}
	return mfs, nil
}

// SubSpaces returns the sub-spaces, in order.
func (mfs *MixedFunctionSpace) SubSpaces() []Space {
	ss := make([]Space, len(mfs.spaces))
	for i, s := range mfs.spaces {
		ss[i] = s
	}
	return ss
}

// NumSubSpaces returns the number of sub-spaces.
func (mfs *MixedFunctionSpace) NumSubSpaces() int {
	return len(mfs.spaces)
}

// SubSpace returns the i-th sub-space.
func (mfs *MixedFunctionSpace) SubSpace(i int) *FunctionSpace {
	return mfs.spaces[i]
}

// Elements returns the elements of all sub-spaces, in order.
func (mfs *MixedFunctionSpace) Elements() []Element {
	return mfs.elements
}

// Element returns the element shared by all sub-spaces, or fails when
// the sub-spaces carry more than one distinct element.
func (mfs *MixedFunctionSpace) Element() (Element, error) {
	distinct := make(map[string]bool)
	for _, e := range mfs.elements {
		distinct[hashKey(e.HashData())] = true
	}
	if len(distinct) == 1 {
		return mfs.elements[0], nil
	}
	return nil, fmt.Errorf("found %d distinct elements in mixed function space, cannot return only one",
		len(distinct))
}

// Domains returns the joined, de-duplicated domains of all sub-spaces.
func (mfs *MixedFunctionSpace) Domains() []Domain {
	var all []Domain
	for _, s := range mfs.spaces {
		all = append(all, s.Domains()...)
	}
	return JoinDomains(all)
}

// Domain returns the single domain of the mixed space; it fails when
// the sub-spaces live on more than one distinct domain and returns nil
// when they carry none at all.
func (mfs *MixedFunctionSpace) Domain() (Domain, error) {
	domains := mfs.Domains()
	switch len(domains) {
	case 0:
		return nil, nil
	case 1:
		return domains[0], nil
	}
	return nil, fmt.Errorf("found %d distinct domains in mixed function space, cannot return just one",
		len(domains))
}

// HashData combines the fingerprints of all sub-spaces.
func (mfs *MixedFunctionSpace) HashData() interface{} {
	data := []interface{}{"MixedFunctionSpace"}
	for _, s := range mfs.spaces {
		data = append(data, s.HashData())
	}
	return data
}

// SignatureData combines the renumbering-aware fingerprints of all
// sub-spaces.
func (mfs *MixedFunctionSpace) SignatureData(rn weft.Renumbering) interface{} {
	data := []interface{}{"MixedFunctionSpace"}
	for _, s := range mfs.spaces {
		data = append(data, s.SignatureData(rn))
	}
	return data
}

func (mfs *MixedFunctionSpace) String() string {
	return fmt.Sprintf("MixedFunctionSpace(%d sub-spaces)", len(mfs.spaces))
}

// --- Domain joining ---------------------------------------------------------

// JoinDomains de-duplicates a sequence of domains by their hash data.
// The result is ordered by digest, making joins deterministic across
// allocation orders. Nil entries are dropped.
func JoinDomains(domains []Domain) []Domain {
	keys := treeset.NewWith(utils.StringComparator)
	byKey := make(map[string]Domain)
	for _, d := range domains {
		if d == nil {
			continue
		}
		k := hashKey(d.HashData())
		if _, ok := byKey[k]; !ok {
			byKey[k] = d
			keys.Add(k)
		}
	}
	if keys.Size() == 0 {
		return nil
	}
	joined := make([]Domain, 0, keys.Size())
	for _, k := range keys.Values() {
		joined = append(joined, byKey[k.(string)])
	}
	tracer().Debugf("joined %d domains into %d distinct ones", len(domains), len(joined))
	return joined
}
