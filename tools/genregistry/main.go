// Command genregistry writes models_registry.go for a models package: every
// struct with a TableName method is registered under its type name.
package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const registryFile = "models_registry.go"

func main() {
	_ = godotenv.Load()

	var modelsDir string
	if len(os.Args) >= 2 {
		modelsDir = os.Args[1]
	} else {
		modelsDir = os.Getenv("MODELS_PATH")
		if modelsDir == "" {
			fmt.Println("Usage: genregistry <models_dir> OR set MODELS_PATH environment variable")
			os.Exit(1)
		}
	}

	names, pkg, err := tableModels(modelsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	src, err := render(pkg, names)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outputFile := filepath.Join(modelsDir, registryFile)
	if err := os.WriteFile(outputFile, src, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s with %d models.\n", outputFile, len(names))
}

// tableModels returns the sorted names of the structs in dir that declare a
// TableName method, and the package name
func tableModels(dir string) ([]string, string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", err
	}

	var pkg string
	structs := map[string]bool{}
	tabled := map[string]bool{}
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == registryFile {
			continue
		}
		node, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pkg = node.Name.Name

		for _, decl := range node.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok {
						if _, ok := ts.Type.(*ast.StructType); ok {
							structs[ts.Name.Name] = true
						}
					}
				}
			case *ast.FuncDecl:
				if d.Name.Name != "TableName" || d.Recv == nil || len(d.Recv.List) != 1 {
					continue
				}
				if recv := receiverName(d.Recv.List[0].Type); recv != "" {
					tabled[recv] = true
				}
			}
		}
	}

	var names []string
	for name := range structs {
		if tabled[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, pkg, nil
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func render(pkg string, names []string) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("// Code generated by genregistry. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("var ModelTypeRegistry = map[string]interface{}{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\t%q: %s{},\n", name, name)
	}
	b.WriteString("}\n")
	return format.Source(b.Bytes())
}
