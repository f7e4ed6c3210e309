/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package apis defines the small contracts shared by the emit packages and
// by code that wants to interoperate with them without importing the
// concrete Condition type.
//
// Boundaries (httpx, grpcx, connectx) depend on these interfaces and view
// types; business code usually depends on nothing but emit and message.
//
// The package must stay free of heavy dependencies: interfaces and plain
// view structs only.
package apis
