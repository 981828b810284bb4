package listing

// Bucket is a named, inclusive price range. Max == 0 means unbounded.
type Bucket struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

func (b Bucket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price <= b.Max
}

// BucketSet is the ordered list of price buckets offered for one listing kind.
type BucketSet []Bucket

func (s BucketSet) Lookup(name string) (Bucket, bool) {
	for _, b := range s {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

func (s BucketSet) Names() []string {
	names := make([]string, len(s))
	for i, b := range s {
		names[i] = b.Name
	}
	return names
}

var (
	SaleBuckets = BucketSet{
		{Name: "1-2m", Min: 1_000_000, Max: 2_000_000},
		{Name: "2-5m", Min: 2_000_000, Max: 5_000_000},
		{Name: "5-10m", Min: 5_000_000, Max: 10_000_000},
		{Name: "10m+", Min: 10_000_000},
	}

	RentBuckets = BucketSet{
		{Name: "50-100k", Min: 50_000, Max: 100_000},
		{Name: "100-200k", Min: 100_000, Max: 200_000},
		{Name: "200-300k", Min: 200_000, Max: 300_000},
		{Name: "300k+", Min: 300_000},
	}

	ProjectBuckets = BucketSet{
		{Name: "1-5m", Min: 1_000_000, Max: 5_000_000},
		{Name: "5-10m", Min: 5_000_000, Max: 10_000_000},
		{Name: "10-25m", Min: 10_000_000, Max: 25_000_000},
		{Name: "25m+", Min: 25_000_000},
	}
)
